// Package synthesis talks to the generative text service that merges a
// folder's notes into one organized summary.
package synthesis

import (
	"fmt"
	"strings"

	"github.com/rbright/mull/internal/entity"
)

const promptHeader = "Please synthesize and organize the following notes and recordings into a coherent and meaningful summary:"

const promptFooter = "Please structure the output in a clear, organized manner with sections and bullet points where appropriate."

// BuildPrompt assembles the single prompt sent per synthesis run. Notes appear
// in cache order, each with a type label, its content, and its transcription
// when one exists.
func BuildPrompt(notes []entity.Note) string {
	blocks := make([]string, 0, len(notes))
	for _, note := range notes {
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] %s", note.Type, note.Content)
		if note.Transcription != "" {
			fmt.Fprintf(&b, "\nTranscription: %s", note.Transcription)
		}
		blocks = append(blocks, b.String())
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", promptHeader, strings.Join(blocks, "\n\n"), promptFooter)
}
