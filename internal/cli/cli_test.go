package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCommandWithFlags(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/mull.yaml", "--folder", "ideas", "--quality", "high", "record"})
	require.NoError(t, err)
	require.Equal(t, CommandRecord, parsed.Command)
	require.Equal(t, "/tmp/mull.yaml", parsed.ConfigPath)
	require.Equal(t, "ideas", parsed.Folder)
	require.Equal(t, "high", parsed.Quality)
	require.False(t, parsed.ShowHelp)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantArgs []string
		wantHelp bool
	}{
		{
			name:     "help short flag",
			args:     []string{"-h"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantCmd: CommandVersion,
		},
		{
			name:    "missing config path",
			args:    []string{"--config"},
			wantErr: "requires a value",
		},
		{
			name:    "missing folder name",
			args:    []string{"--folder"},
			wantErr: "requires a value",
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			wantErr: "unknown flag",
		},
		{
			name:    "unknown command",
			args:    []string{"bogus"},
			wantErr: "unknown command",
		},
		{
			name:    "extra args after status",
			args:    []string{"status", "extra"},
			wantErr: "unexpected arguments",
		},
		{
			name:    "folder needs name and description",
			args:    []string{"folder", "ideas"},
			wantErr: "requires at least 2",
		},
		{
			name:     "folder with tags",
			args:     []string{"folder", "ideas", "scratchpad", "work", "urgent"},
			wantCmd:  CommandFolder,
			wantArgs: []string{"ideas", "scratchpad", "work", "urgent"},
		},
		{
			name:    "jot needs text",
			args:    []string{"jot"},
			wantErr: "requires at least 1",
		},
		{
			name:     "jot with words",
			args:     []string{"jot", "remember", "the", "milk"},
			wantCmd:  CommandJot,
			wantArgs: []string{"remember", "the", "milk"},
		},
		{
			name:     "discard",
			args:     []string{"discard"},
			wantCmd:  CommandDiscard,
		},
		{
			name:     "synthesize with folder flag",
			args:     []string{"--folder", "ideas", "synthesize"},
			wantCmd:  CommandSynthesize,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
			if tc.wantArgs != nil {
				require.Equal(t, tc.wantArgs, parsed.Args)
			}
		})
	}
}

func TestHelpTextIncludesCoreCommands(t *testing.T) {
	text := HelpText("mull")
	require.Contains(t, text, "record")
	require.Contains(t, text, "commit")
	require.Contains(t, text, "discard")
	require.Contains(t, text, "synthesize")
	require.Contains(t, text, "--folder NAME")
	require.Contains(t, text, "--config PATH")
}
