package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandRecord     Command = "record"
	CommandPause      Command = "pause"
	CommandResume     Command = "resume"
	CommandStop       Command = "stop"
	CommandCommit     Command = "commit"
	CommandDiscard    Command = "discard"
	CommandStatus     Command = "status"
	CommandDevices    Command = "devices"
	CommandFolders    Command = "folders"
	CommandFolder     Command = "folder"
	CommandNotes      Command = "notes"
	CommandJot        Command = "jot"
	CommandSynthesize Command = "synthesize"
	CommandDoctor     Command = "doctor"
	CommandVersion    Command = "version"
	CommandHelp       Command = "help"
)

// commandArity bounds the positional arguments each command accepts.
// -1 means unbounded.
var commandArity = map[Command]struct{ min, max int }{
	CommandRecord:     {0, 0},
	CommandPause:      {0, 0},
	CommandResume:     {0, 0},
	CommandStop:       {0, 0},
	CommandCommit:     {0, 0},
	CommandDiscard:    {0, 0},
	CommandStatus:     {0, 0},
	CommandDevices:    {0, 0},
	CommandFolders:    {0, 0},
	CommandFolder:     {2, -1},
	CommandNotes:      {0, 0},
	CommandJot:        {1, -1},
	CommandSynthesize: {0, 0},
	CommandDoctor:     {0, 0},
	CommandVersion:    {0, 0},
	CommandHelp:       {0, 0},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	Folder     string
	Quality    string
	Args       []string
	ShowHelp   bool
}

// Parse reads flags up to the first non-flag token, which names the command;
// everything after it is the command's positional arguments.
func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			return Parsed{Command: CommandHelp, ShowHelp: true}, nil
		case "--version":
			return Parsed{Command: CommandVersion}, nil
		case "--config":
			value, next, err := flagValue(args, i)
			if err != nil {
				return Parsed{}, err
			}
			parsed.ConfigPath = value
			i = next
		case "--folder":
			value, next, err := flagValue(args, i)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Folder = value
			i = next
		case "--quality":
			value, next, err := flagValue(args, i)
			if err != nil {
				return Parsed{}, err
			}
			parsed.Quality = value
			i = next
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			arity, ok := commandArity[cmd]
			if !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			rest := args[i+1:]
			if len(rest) < arity.min {
				return Parsed{}, fmt.Errorf("command %q requires at least %d argument(s)", arg, arity.min)
			}
			if arity.max >= 0 && len(rest) > arity.max {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}

			parsed.Command = cmd
			parsed.Args = rest
			parsed.ShowHelp = cmd == CommandHelp
			return parsed, nil
		}
	}

	return parsed, nil
}

func flagValue(args []string, i int) (string, int, error) {
	if i+1 >= len(args) {
		return "", 0, errors.New(args[i] + " requires a value")
	}
	return args[i+1], i + 1, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--folder NAME] [--quality standard|high] <command> [args]

Capture commands:
  record       Start a recording session (foreground; commits into --folder)
  pause        Pause the active recording
  resume       Resume a paused recording
  stop         Stop recording and show the preview
  commit       Encode, upload, and save the stopped recording as a note
  discard      Throw away the stopped recording
  status       Print the capture session state
  devices      List available input devices

Folder commands:
  folders                  List folders, newest first
  folder NAME DESC [TAG..] Create a folder
  notes                    List notes in --folder, newest first
  jot TEXT..               Add a text note to --folder
  synthesize               Merge --folder's notes into one summary

Other commands:
  doctor       Run configuration and environment checks
  version      Print version information
  help         Show this help

Flags:
  --config PATH     Config file path (default: $XDG_CONFIG_HOME/mull/config.yaml)
  --folder NAME     Target folder for record, notes, jot, synthesize
  --quality NAME    Capture quality profile: standard or high
  -h, --help        Show help
  --version         Show version
`, binaryName)
}
