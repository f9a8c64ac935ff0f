// Package entity defines the persisted record types shared by the store and gateway.
package entity

import "time"

// NoteType is fixed at note creation and never changes.
type NoteType string

const (
	NoteText      NoteType = "text"
	NoteRecording NoteType = "recording"
)

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	return t == NoteText || t == NoteRecording
}

// Folder is a named collection of notes and at most one current synthesis.
type Folder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Note is one captured idea: free text, or a recording caption plus file URL.
// Version starts at 1 and increments exactly once per successful update.
type Note struct {
	ID            string    `json:"id"`
	FolderID      string    `json:"folder_id"`
	Content       string    `json:"content"`
	Type          NoteType  `json:"type"`
	FileURL       string    `json:"file_url,omitempty"`
	Transcription string    `json:"transcription,omitempty"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasFileRef reports whether the recording invariant holds: a file URL is
// present if and only if the note is a recording.
func (n Note) HasFileRef() bool {
	return n.FileURL != ""
}

// SynthesizedIdea is an immutable generated summary of one folder's notes.
// A later synthesis run supersedes it; it is never edited in place.
type SynthesizedIdea struct {
	ID        string    `json:"id"`
	FolderID  string    `json:"folder_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
