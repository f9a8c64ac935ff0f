package synthesis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbright/mull/internal/entity"
)

func TestBuildPromptIncludesContentAndTranscription(t *testing.T) {
	notes := []entity.Note{
		{Content: "A", Type: entity.NoteText},
		{Content: "B", Type: entity.NoteRecording, Transcription: "b-said"},
	}

	prompt := BuildPrompt(notes)

	require.Contains(t, prompt, promptHeader)
	require.Contains(t, prompt, promptFooter)
	require.Contains(t, prompt, "[text] A")
	require.Contains(t, prompt, "[recording] B\nTranscription: b-said")
	// Notes are separated by blank lines, in cache order.
	require.Less(t, strings.Index(prompt, "[text] A"), strings.Index(prompt, "[recording] B"))
}

func TestBuildPromptOmitsEmptyTranscription(t *testing.T) {
	prompt := BuildPrompt([]entity.Note{{Content: "solo", Type: entity.NoteText}})
	require.NotContains(t, prompt, "Transcription:")
}

func TestBuildPromptZeroNotesStillWellFormed(t *testing.T) {
	// The store rejects empty folders before building a prompt; this only
	// pins the shape if that guard is ever bypassed.
	prompt := BuildPrompt(nil)
	require.Contains(t, prompt, promptHeader)
}
