package docsystem

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
)

// CategoryAll is the filter value matching every category.
const CategoryAll = "all"

// DocumentCatalog is the client-side cache of one site's documents.
// Mutating operations are local projections applied only after the
// corresponding server call has succeeded; the catalog never mutates
// speculatively.
type DocumentCatalog struct {
	gateway remote.DocumentGateway
	logger  *slog.Logger

	mu     sync.RWMutex
	siteID string
	docs   []models.Document
}

// NewDocumentCatalog creates a catalog bound to the document gateway.
func NewDocumentCatalog(gateway remote.DocumentGateway, logger *slog.Logger) *DocumentCatalog {
	return &DocumentCatalog{gateway: gateway, logger: logger}
}

// Load replaces the cache with the server's document list for a site.
func (c *DocumentCatalog) Load(ctx context.Context, siteID string) error {
	docs, err := c.gateway.ListBySite(ctx, siteID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.siteID = siteID
	c.docs = docs
	c.mu.Unlock()

	c.logger.Info("document catalog loaded", "site_id", siteID, "count", len(docs))
	return nil
}

// SiteID returns the site the catalog currently holds.
func (c *DocumentCatalog) SiteID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.siteID
}

// Documents returns a copy of the cached list, most recent first.
func (c *DocumentCatalog) Documents() []models.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Document(nil), c.docs...)
}

// Get returns the cached document with the given id, or nil.
func (c *DocumentCatalog) Get(id string) *models.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.docs {
		if c.docs[i].ID == id {
			doc := c.docs[i]
			return &doc
		}
	}
	return nil
}

// Filter returns the documents matching both predicates: query is a
// case-insensitive substring match over fileName or any language of
// the description (empty query matches all); category must match
// exactly unless it is "all".
func (c *DocumentCatalog) Filter(query, category string) []models.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	matchAll := category == "" || category == CategoryAll

	var out []models.Document
	for _, doc := range c.docs {
		if !matchAll && doc.Category != category {
			continue
		}
		if needle != "" && !matchesQuery(&doc, needle) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func matchesQuery(doc *models.Document, needle string) bool {
	if strings.Contains(strings.ToLower(doc.FileName), needle) {
		return true
	}
	for _, text := range []string{doc.Description.En, doc.Description.Rw, doc.Description.Fr} {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

// CountInFolder reports how many cached documents live directly in a
// folder. The empty folder id counts unfiled documents.
func (c *DocumentCatalog) CountInFolder(folderID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for i := range c.docs {
		switch {
		case folderID == "" && c.docs[i].FolderID == nil:
			count++
		case c.docs[i].FolderID != nil && *c.docs[i].FolderID == folderID:
			count++
		}
	}
	return count
}

// InFolder returns the cached documents directly inside a folder; the
// empty folder id selects the root/unfiled view.
func (c *DocumentCatalog) InFolder(folderID string) []models.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Document
	for _, doc := range c.docs {
		switch {
		case folderID == "" && doc.FolderID == nil:
			out = append(out, doc)
		case doc.FolderID != nil && *doc.FolderID == folderID:
			out = append(out, doc)
		}
	}
	return out
}

// ApplyUploadResult prepends newly created documents so the freshest
// uploads render first, without a full reload round-trip.
func (c *DocumentCatalog) ApplyUploadResult(newDocs []models.Document) {
	if len(newDocs) == 0 {
		return
	}

	c.mu.Lock()
	c.docs = append(append([]models.Document(nil), newDocs...), c.docs...)
	c.mu.Unlock()

	c.logger.Debug("upload result merged into catalog", "count", len(newDocs))
}

// Delete removes a document on the server, then drops it from the
// cache.
func (c *DocumentCatalog) Delete(ctx context.Context, id string) error {
	if err := c.gateway.Delete(ctx, id); err != nil {
		return err
	}
	c.ApplyDelete(id)
	c.logger.Info("document deleted", "id", id)
	return nil
}

// ApplyDelete drops a document from the cache. Idempotent: unknown ids
// are a no-op.
func (c *DocumentCatalog) ApplyDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.docs {
		if c.docs[i].ID == id {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return
		}
	}
}

// ReplaceDocuments swaps in server-confirmed document records by id.
// Unknown ids are ignored; positions are preserved.
func (c *DocumentCatalog) ReplaceDocuments(docs []models.Document) {
	if len(docs) == 0 {
		return
	}

	byID := make(map[string]models.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.docs {
		if doc, ok := byID[c.docs[i].ID]; ok {
			c.docs[i] = doc
		}
	}
}

// ApplyMetadataUpdate projects the same patch onto every listed
// document. Batch edits are overwrite-only: fields present in the
// patch replace the prior value entirely, absent fields are untouched.
func (c *DocumentCatalog) ApplyMetadataUpdate(ids []string, patch *models.DocumentPatch) {
	if patch == nil || len(ids) == 0 {
		return
	}

	targets := make(map[string]bool, len(ids))
	for _, id := range ids {
		targets[id] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.docs {
		if targets[c.docs[i].ID] {
			patch.Apply(&c.docs[i])
		}
	}
}
