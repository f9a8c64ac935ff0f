package store

import (
	"context"
	"fmt"

	"github.com/rbright/mull/internal/entity"
	"github.com/rbright/mull/internal/synthesis"
)

// Busy reports whether a synthesis run is in flight for the folder. The UI
// uses this to disable repeat triggers.
func (s *Store) Busy(folderID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy[folderID]
}

// SynthesizeFolder gathers the folder's cached notes (a snapshot at call
// time), sends one combined prompt to the generative service, persists the
// result, and replaces the folder's cached synthesis. Any failure after
// validation surfaces ErrSynthesisFailed with no partial state committed.
func (s *Store) SynthesizeFolder(ctx context.Context, folderID string) (entity.SynthesizedIdea, error) {
	s.mu.Lock()
	if s.busy[folderID] {
		s.mu.Unlock()
		return entity.SynthesizedIdea{}, fmt.Errorf("%w: folder %s", ErrSynthesisInProgress, folderID)
	}
	notes := s.notesLocked(folderID)
	if len(notes) == 0 {
		s.mu.Unlock()
		return entity.SynthesizedIdea{}, fmt.Errorf("%w: nothing to synthesize in folder %s", ErrValidation, folderID)
	}
	s.busy[folderID] = true
	s.mu.Unlock()

	s.publish(Event{Kind: EventBusy, FolderID: folderID})
	defer func() {
		s.mu.Lock()
		delete(s.busy, folderID)
		s.mu.Unlock()
		s.publish(Event{Kind: EventBusy, FolderID: folderID})
	}()

	prompt := synthesis.BuildPrompt(notes)

	generated, err := s.synth.Generate(ctx, prompt)
	if err != nil {
		return entity.SynthesizedIdea{}, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}

	idea, err := s.gateway.CreateSynthesis(ctx, entity.SynthesizedIdea{
		FolderID: folderID,
		Content:  generated,
	})
	if err != nil {
		return entity.SynthesizedIdea{}, fmt.Errorf("%w: persist synthesis: %w", ErrSynthesisFailed, err)
	}

	s.mu.Lock()
	s.syntheses[folderID] = idea // replaces, never merges
	s.mu.Unlock()

	s.publish(Event{Kind: EventSynthesis, FolderID: folderID})
	s.logInfo("folder synthesized", "folder_id", folderID, "synthesis_id", idea.ID, "note_count", len(notes))
	return idea, nil
}
