package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rbright/mull/internal/entity"
	"github.com/rbright/mull/internal/store"
)

// ListNotes returns one folder's notes, newest first.
func (c *Client) ListNotes(ctx context.Context, folderID string) ([]entity.Note, error) {
	var notes []entity.Note
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("folder_id", eq(folderID)).
		SetQueryParam("order", "created_at.desc").
		SetResult(&notes).
		Get(restPrefix + "/notes")
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return notes, nil
}

// CreateNote inserts a note at version 1.
func (c *Client) CreateNote(ctx context.Context, note entity.Note) (entity.Note, error) {
	body := map[string]any{
		"folder_id": note.FolderID,
		"content":   note.Content,
		"type":      note.Type,
		"version":   1,
	}
	if note.FileURL != "" {
		body["file_url"] = note.FileURL
	}
	if note.Transcription != "" {
		body["transcription"] = note.Transcription
	}

	var rows []entity.Note
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(&rows).
		Post(restPrefix + "/notes")
	if err != nil {
		return entity.Note{}, fmt.Errorf("create note: %w", err)
	}
	if resp.IsError() {
		return entity.Note{}, apiError(resp)
	}
	if len(rows) == 0 {
		return entity.Note{}, fmt.Errorf("create note: gateway returned no row")
	}
	return rows[0], nil
}

// UpdateNote is a check-and-set: the PATCH is filtered on both id and the
// expected version, so a concurrent writer makes it match zero rows. The
// follow-up GET distinguishes a lost race from a deleted note.
func (c *Client) UpdateNote(ctx context.Context, id string, expectedVersion int, patch store.NotePatch) (entity.Note, error) {
	body := map[string]any{
		"version": expectedVersion + 1,
	}
	if patch.Content != nil {
		body["content"] = *patch.Content
	}
	if patch.Transcription != nil {
		body["transcription"] = *patch.Transcription
	}

	var rows []entity.Note
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eq(id)).
		SetQueryParam("version", eq(strconv.Itoa(expectedVersion))).
		SetBody(body).
		SetResult(&rows).
		Patch(restPrefix + "/notes")
	if err != nil {
		return entity.Note{}, fmt.Errorf("update note: %w", err)
	}
	if resp.IsError() {
		return entity.Note{}, apiError(resp)
	}
	if len(rows) > 0 {
		return rows[0], nil
	}

	exists, err := c.noteExists(ctx, id)
	if err != nil {
		return entity.Note{}, err
	}
	if exists {
		return entity.Note{}, fmt.Errorf("%w: note %s expected version %d", store.ErrVersionConflict, id, expectedVersion)
	}
	return entity.Note{}, fmt.Errorf("%w: note %s", store.ErrNotFound, id)
}

func (c *Client) noteExists(ctx context.Context, id string) (bool, error) {
	var rows []entity.Note
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "id,version").
		SetQueryParam("id", eq(id)).
		SetResult(&rows).
		Get(restPrefix + "/notes")
	if err != nil {
		return false, fmt.Errorf("check note: %w", err)
	}
	if resp.IsError() {
		return false, apiError(resp)
	}
	return len(rows) > 0, nil
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", eq(id)).
		Delete(restPrefix + "/notes")
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// CreateSynthesis persists one generated summary row.
func (c *Client) CreateSynthesis(ctx context.Context, idea entity.SynthesizedIdea) (entity.SynthesizedIdea, error) {
	var rows []entity.SynthesizedIdea
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(map[string]any{
			"folder_id": idea.FolderID,
			"content":   idea.Content,
		}).
		SetResult(&rows).
		Post(restPrefix + "/synthesized_ideas")
	if err != nil {
		return entity.SynthesizedIdea{}, fmt.Errorf("create synthesis: %w", err)
	}
	if resp.IsError() {
		return entity.SynthesizedIdea{}, apiError(resp)
	}
	if len(rows) == 0 {
		return entity.SynthesizedIdea{}, fmt.Errorf("create synthesis: gateway returned no row")
	}
	return rows[0], nil
}
