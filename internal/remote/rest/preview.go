package rest

import (
	"context"
	"net/url"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
)

type previewGateway struct {
	client *Client
}

// NewPreviewGateway returns the REST implementation of the
// preview-fetch collaborator.
func NewPreviewGateway(client *Client) remote.PreviewGateway {
	return &previewGateway{client: client}
}

func (g *previewGateway) FetchPreview(ctx context.Context, documentID string) (*models.PreviewPayload, error) {
	var payload models.PreviewPayload
	if err := g.client.getJSON(ctx, "/documents/"+url.PathEscape(documentID)+"/preview", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
