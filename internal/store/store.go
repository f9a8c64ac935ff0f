// Package store is the client-side authoritative cache of folders, notes,
// and synthesis results. Every mutation is confirmed against the remote
// persistence gateway before the cache reflects it; a failed mutation leaves
// the cache in its pre-call state.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rbright/mull/internal/entity"
)

// Store mediates every entity mutation between callers and the gateway.
// Construct one per session with New; the cache maps are owned exclusively
// by the store and must never be written by callers.
type Store struct {
	logger  *slog.Logger
	gateway Gateway
	synth   Synthesizer

	mu          sync.RWMutex
	folders     map[string]entity.Folder
	folderOrder []string // newest first
	notes       map[string]entity.Note
	noteOrder   map[string][]string // folder id -> note ids, newest first
	syntheses   map[string]entity.SynthesizedIdea
	current     string
	busy        map[string]bool
	subs        []chan Event
}

// New constructs an empty store around its two remote collaborators.
func New(logger *slog.Logger, gateway Gateway, synth Synthesizer) *Store {
	return &Store{
		logger:    logger,
		gateway:   gateway,
		synth:     synth,
		folders:   make(map[string]entity.Folder),
		notes:     make(map[string]entity.Note),
		noteOrder: make(map[string][]string),
		syntheses: make(map[string]entity.SynthesizedIdea),
		busy:      make(map[string]bool),
	}
}

// RefreshFolders replaces the cached folder list wholesale from the gateway.
func (s *Store) RefreshFolders(ctx context.Context) error {
	folders, err := s.gateway.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}

	s.mu.Lock()
	s.folders = make(map[string]entity.Folder, len(folders))
	s.folderOrder = make([]string, 0, len(folders))
	for _, folder := range folders {
		s.folders[folder.ID] = folder
		s.folderOrder = append(s.folderOrder, folder.ID)
	}
	s.mu.Unlock()

	s.publish(Event{Kind: EventFolders})
	return nil
}

// CreateFolder persists a new folder and prepends it to the cache.
func (s *Store) CreateFolder(ctx context.Context, name, description string, tags []string) (entity.Folder, error) {
	if name == "" {
		return entity.Folder{}, fmt.Errorf("%w: folder name is empty", ErrValidation)
	}
	if description == "" {
		return entity.Folder{}, fmt.Errorf("%w: folder description is empty", ErrValidation)
	}

	created, err := s.gateway.CreateFolder(ctx, entity.Folder{
		Name:        name,
		Description: description,
		Tags:        tags,
	})
	if err != nil {
		return entity.Folder{}, fmt.Errorf("create folder: %w", err)
	}

	s.mu.Lock()
	s.folders[created.ID] = created
	s.folderOrder = append([]string{created.ID}, s.folderOrder...)
	s.mu.Unlock()

	s.publish(Event{Kind: EventFolders, FolderID: created.ID})
	s.logInfo("folder created", "folder_id", created.ID, "name", created.Name)
	return created, nil
}

// UpdateFolder merges patched fields into the cached folder iff the remote
// update succeeds.
func (s *Store) UpdateFolder(ctx context.Context, id string, patch FolderPatch) (entity.Folder, error) {
	updated, err := s.gateway.UpdateFolder(ctx, id, patch)
	if err != nil {
		return entity.Folder{}, fmt.Errorf("update folder %s: %w", id, err)
	}

	s.mu.Lock()
	if _, known := s.folders[id]; !known {
		s.folderOrder = append([]string{id}, s.folderOrder...)
	}
	s.folders[id] = updated
	s.mu.Unlock()

	s.publish(Event{Kind: EventFolders, FolderID: id})
	return updated, nil
}

// DeleteFolder removes the folder remotely, then evicts it and its cached
// notes and synthesis. Child record deletion is the gateway's cascade
// contract; the client only evicts its own cache.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	if err := s.gateway.DeleteFolder(ctx, id); err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}

	s.mu.Lock()
	delete(s.folders, id)
	s.folderOrder = removeID(s.folderOrder, id)
	for _, noteID := range s.noteOrder[id] {
		delete(s.notes, noteID)
	}
	delete(s.noteOrder, id)
	delete(s.syntheses, id)
	if s.current == id {
		s.current = ""
	}
	s.mu.Unlock()

	s.publish(Event{Kind: EventFolders, FolderID: id})
	s.logInfo("folder deleted", "folder_id", id)
	return nil
}

// SetCurrentFolder selects a folder (or none, with an empty id) and replaces
// that folder's cached notes wholesale from the gateway. The remote list is
// authoritative; there is no local merge.
func (s *Store) SetCurrentFolder(ctx context.Context, id string) error {
	if id == "" {
		s.mu.Lock()
		s.current = ""
		s.mu.Unlock()
		s.publish(Event{Kind: EventNotes})
		return nil
	}

	s.mu.RLock()
	_, known := s.folders[id]
	s.mu.RUnlock()
	if !known {
		return fmt.Errorf("%w: folder %s is not cached", ErrNotFound, id)
	}

	notes, err := s.gateway.ListNotes(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch notes for folder %s: %w", id, err)
	}

	s.mu.Lock()
	s.current = id
	for _, noteID := range s.noteOrder[id] {
		delete(s.notes, noteID)
	}
	order := make([]string, 0, len(notes))
	for _, note := range notes {
		s.notes[note.ID] = note
		order = append(order, note.ID)
	}
	s.noteOrder[id] = order
	s.mu.Unlock()

	s.publish(Event{Kind: EventNotes, FolderID: id})
	return nil
}

// CurrentFolder returns the selected folder, if any.
func (s *Store) CurrentFolder() (entity.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folder, ok := s.folders[s.current]
	return folder, ok
}

// Folders returns a cache snapshot, newest first.
func (s *Store) Folders() []entity.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Folder, 0, len(s.folderOrder))
	for _, id := range s.folderOrder {
		out = append(out, s.folders[id])
	}
	return out
}

// FolderByName resolves a cached folder by exact name match.
func (s *Store) FolderByName(name string) (entity.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.folderOrder {
		if s.folders[id].Name == name {
			return s.folders[id], true
		}
	}
	return entity.Folder{}, false
}

// Notes returns a cache snapshot of one folder's notes, newest first.
func (s *Store) Notes(folderID string) []entity.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notesLocked(folderID)
}

func (s *Store) notesLocked(folderID string) []entity.Note {
	out := make([]entity.Note, 0, len(s.noteOrder[folderID]))
	for _, id := range s.noteOrder[folderID] {
		out = append(out, s.notes[id])
	}
	return out
}

// Note returns one cached note by id.
func (s *Store) Note(id string) (entity.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	return note, ok
}

// Synthesis returns the cached synthesis for a folder, if any.
func (s *Store) Synthesis(folderID string) (entity.SynthesizedIdea, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idea, ok := s.syntheses[folderID]
	return idea, ok
}

// AddNote persists a new note and prepends it to the folder's cache. The
// file reference must be present if and only if the note is a recording.
func (s *Store) AddNote(ctx context.Context, folderID, content string, noteType entity.NoteType, fileRef string) (entity.Note, error) {
	if !noteType.Valid() {
		return entity.Note{}, fmt.Errorf("%w: unknown note type %q", ErrValidation, noteType)
	}
	if noteType == entity.NoteRecording && fileRef == "" {
		return entity.Note{}, fmt.Errorf("%w: recording note requires a file reference", ErrValidation)
	}
	if noteType == entity.NoteText && fileRef != "" {
		return entity.Note{}, fmt.Errorf("%w: text note must not carry a file reference", ErrValidation)
	}

	created, err := s.gateway.CreateNote(ctx, entity.Note{
		FolderID: folderID,
		Content:  content,
		Type:     noteType,
		FileURL:  fileRef,
		Version:  1,
	})
	if err != nil {
		return entity.Note{}, fmt.Errorf("create note: %w", err)
	}

	s.mu.Lock()
	s.notes[created.ID] = created
	s.noteOrder[folderID] = append([]string{created.ID}, s.noteOrder[folderID]...)
	s.mu.Unlock()

	s.publish(Event{Kind: EventNotes, FolderID: folderID})
	s.logInfo("note added", "note_id", created.ID, "folder_id", folderID, "type", string(noteType))
	return created, nil
}

// UpdateNote patches a note with check-and-set semantics: the expected
// version is read from the cache and the gateway bumps it by exactly one iff
// it still matches remotely. A lost race surfaces ErrVersionConflict and the
// cache keeps its pre-call value.
func (s *Store) UpdateNote(ctx context.Context, id string, patch NotePatch) (entity.Note, error) {
	s.mu.RLock()
	cached, ok := s.notes[id]
	s.mu.RUnlock()
	if !ok {
		return entity.Note{}, fmt.Errorf("%w: note %s is not cached", ErrNotFound, id)
	}

	updated, err := s.gateway.UpdateNote(ctx, id, cached.Version, patch)
	if err != nil {
		return entity.Note{}, fmt.Errorf("update note %s: %w", id, err)
	}

	s.mu.Lock()
	s.notes[id] = updated
	s.mu.Unlock()

	s.publish(Event{Kind: EventNotes, FolderID: updated.FolderID})
	return updated, nil
}

// DeleteNote removes a note from cache only after remote confirmation.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if err := s.gateway.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}

	s.mu.Lock()
	note, ok := s.notes[id]
	if ok {
		delete(s.notes, id)
		s.noteOrder[note.FolderID] = removeID(s.noteOrder[note.FolderID], id)
	}
	s.mu.Unlock()

	if ok {
		s.publish(Event{Kind: EventNotes, FolderID: note.FolderID})
	}
	return nil
}

// removeID drops one id from an order slice, preserving order.
func removeID(order []string, id string) []string {
	for i, candidate := range order {
		if candidate == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func (s *Store) logInfo(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg, args...)
}
