package rest

import (
	"context"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
)

type tagGateway struct {
	client *Client
}

// NewTagGateway returns the REST implementation of the tag statistics
// collaborator.
func NewTagGateway(client *Client) remote.TagGateway {
	return &tagGateway{client: client}
}

func (g *tagGateway) Statistics(ctx context.Context) ([]models.TagUsage, error) {
	var usages []models.TagUsage
	if err := g.client.getJSON(ctx, "/tags/statistics", nil, &usages); err != nil {
		return nil, err
	}
	return usages, nil
}
