package store

import (
	"context"

	"github.com/rbright/mull/internal/entity"
)

// FolderPatch carries the folder fields an update may change; nil leaves a
// field untouched.
type FolderPatch struct {
	Name        *string
	Description *string
	Tags        *[]string
}

// NotePatch carries the note fields an update may change; nil leaves a field
// untouched. Version is never patched directly - the store computes it.
type NotePatch struct {
	Content       *string
	Transcription *string
}

// Gateway is the remote persistence service the store confirms every
// mutation against before touching its cache.
type Gateway interface {
	ListFolders(ctx context.Context) ([]entity.Folder, error)
	CreateFolder(ctx context.Context, folder entity.Folder) (entity.Folder, error)
	UpdateFolder(ctx context.Context, id string, patch FolderPatch) (entity.Folder, error)
	DeleteFolder(ctx context.Context, id string) error

	ListNotes(ctx context.Context, folderID string) ([]entity.Note, error)
	CreateNote(ctx context.Context, note entity.Note) (entity.Note, error)
	// UpdateNote applies patch iff the remote version still equals
	// expectedVersion, bumping it by one; otherwise it fails with
	// ErrVersionConflict (or ErrNotFound when the id is gone).
	UpdateNote(ctx context.Context, id string, expectedVersion int, patch NotePatch) (entity.Note, error)
	DeleteNote(ctx context.Context, id string) error

	CreateSynthesis(ctx context.Context, idea entity.SynthesizedIdea) (entity.SynthesizedIdea, error)
}

// Synthesizer is the generative text collaborator used by SynthesizeFolder.
type Synthesizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
