package ipc

// Commands accepted by a running capture session's control socket.
const (
	CmdStatus  = "status"
	CmdPause   = "pause"
	CmdResume  = "resume"
	CmdStop    = "stop"
	CmdPreview = "preview"
	CmdCommit  = "commit"
	CmdDiscard = "discard"
)

type Request struct {
	Command string `json:"command"`
}

// Response carries the session state after the command, plus the
// command-specific payload fields (preview peaks, commit result).
type Response struct {
	OK              bool      `json:"ok"`
	State           string    `json:"state,omitempty"`
	Message         string    `json:"message,omitempty"`
	Error           string    `json:"error,omitempty"`
	ElapsedSeconds  float64   `json:"elapsed_seconds,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	Peaks           []float64 `json:"peaks,omitempty"`
	FileRef         string    `json:"file_ref,omitempty"`
	Caption         string    `json:"caption,omitempty"`
}
