package rest

import (
	"context"
	"net/http"
	"net/url"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
)

type folderGateway struct {
	client *Client
}

// NewFolderGateway returns the REST implementation of the folder
// collaborator.
func NewFolderGateway(client *Client) remote.FolderGateway {
	return &folderGateway{client: client}
}

func (g *folderGateway) Tree(ctx context.Context, siteID string) ([]models.Folder, error) {
	var folders []models.Folder
	if err := g.client.getJSON(ctx, "/folders/site/"+url.PathEscape(siteID), nil, &folders); err != nil {
		return nil, err
	}
	g.client.logCall("folder tree fetched", "site_id", siteID, "count", len(folders))
	return folders, nil
}

func (g *folderGateway) Create(ctx context.Context, req *remote.CreateFolderRequest) (*models.Folder, error) {
	var folder models.Folder
	if err := g.client.sendJSON(ctx, http.MethodPost, "/folders", req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (g *folderGateway) Update(ctx context.Context, folderID string, req *remote.UpdateFolderRequest) (*models.Folder, error) {
	var folder models.Folder
	if err := g.client.sendJSON(ctx, http.MethodPut, "/folders/"+url.PathEscape(folderID), req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (g *folderGateway) Delete(ctx context.Context, folderID string, recursive bool) error {
	path := "/folders/" + url.PathEscape(folderID)
	if recursive {
		path += "?recursive=true"
	}
	return g.client.sendJSON(ctx, http.MethodDelete, path, nil, nil)
}

func (g *folderGateway) Move(ctx context.Context, folderID string, newParentID *string) error {
	body := struct {
		NewParentID *string `json:"newParentId"`
	}{NewParentID: newParentID}
	return g.client.sendJSON(ctx, http.MethodPut, "/folders/"+url.PathEscape(folderID)+"/move", body, nil)
}
