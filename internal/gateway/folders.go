package gateway

import (
	"context"
	"fmt"

	"github.com/rbright/mull/internal/entity"
	"github.com/rbright/mull/internal/store"
)

// ListFolders returns every folder, newest first.
func (c *Client) ListFolders(ctx context.Context) ([]entity.Folder, error) {
	var folders []entity.Folder
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc").
		SetResult(&folders).
		Get(restPrefix + "/folders")
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return folders, nil
}

// CreateFolder inserts a folder and returns the stored row, id and
// timestamp assigned by the gateway.
func (c *Client) CreateFolder(ctx context.Context, folder entity.Folder) (entity.Folder, error) {
	var rows []entity.Folder
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(map[string]any{
			"name":        folder.Name,
			"description": folder.Description,
			"tags":        folder.Tags,
		}).
		SetResult(&rows).
		Post(restPrefix + "/folders")
	if err != nil {
		return entity.Folder{}, fmt.Errorf("create folder: %w", err)
	}
	if resp.IsError() {
		return entity.Folder{}, apiError(resp)
	}
	if len(rows) == 0 {
		return entity.Folder{}, fmt.Errorf("create folder: gateway returned no row")
	}
	return rows[0], nil
}

// UpdateFolder patches only the fields present in patch.
func (c *Client) UpdateFolder(ctx context.Context, id string, patch store.FolderPatch) (entity.Folder, error) {
	body := map[string]any{}
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.Description != nil {
		body["description"] = *patch.Description
	}
	if patch.Tags != nil {
		body["tags"] = *patch.Tags
	}

	var rows []entity.Folder
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", eq(id)).
		SetBody(body).
		SetResult(&rows).
		Patch(restPrefix + "/folders")
	if err != nil {
		return entity.Folder{}, fmt.Errorf("update folder: %w", err)
	}
	if resp.IsError() {
		return entity.Folder{}, apiError(resp)
	}
	if len(rows) == 0 {
		return entity.Folder{}, fmt.Errorf("%w: folder %s", store.ErrNotFound, id)
	}
	return rows[0], nil
}

// DeleteFolder removes a folder. The gateway cascades deletion to the
// folder's notes and syntheses.
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", eq(id)).
		Delete(restPrefix + "/folders")
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}
