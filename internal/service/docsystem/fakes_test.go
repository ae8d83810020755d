package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// fakeDocGateway implements remote.DocumentGateway in memory.
type fakeDocGateway struct {
	mu        sync.Mutex
	docs      []models.Document
	uploadErr map[string]error // by file name
	updateErr map[string]error // by document id
	deleteErr error
	nextID    int
	listCalls int
	// block, when non-nil, is closed by the test to release uploads;
	// started receives one value per upload that reached the gateway.
	block   chan struct{}
	started chan struct{}
}

func (g *fakeDocGateway) List(ctx context.Context, page remote.ListPage) (*remote.PagedDocuments, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &remote.PagedDocuments{
		Documents:  append([]models.Document(nil), g.docs...),
		TotalCount: len(g.docs),
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}

func (g *fakeDocGateway) ListBySite(ctx context.Context, siteID string) ([]models.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	return append([]models.Document(nil), g.docs...), nil
}

func (g *fakeDocGateway) Upload(ctx context.Context, siteID string, file models.CandidateFile, meta models.UploadMetadata, onProgress remote.ProgressFunc) (*models.Document, error) {
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.block != nil {
		<-g.block
	}
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.uploadErr[file.Name]; err != nil {
		return nil, err
	}
	g.nextID++
	doc := models.Document{
		ID:       fmt.Sprintf("doc-%d", g.nextID),
		SiteID:   siteID,
		FileName: file.Name,
		FileType: file.MIMEType,
		FileSize: file.Size,
		Category: meta.Category,
		FolderID: meta.FolderID,
	}
	g.docs = append(g.docs, doc)
	return &doc, nil
}

func (g *fakeDocGateway) Update(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.updateErr[id]; err != nil {
		return nil, err
	}
	for i := range g.docs {
		if g.docs[i].ID == id {
			patch.Apply(&g.docs[i])
			doc := g.docs[i]
			return &doc, nil
		}
	}
	// Unknown ids still answer: the fake mirrors a server that applies
	// the patch to a record the client has not cached.
	doc := models.Document{ID: id}
	patch.Apply(&doc)
	return &doc, nil
}

func (g *fakeDocGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i := range g.docs {
		if g.docs[i].ID == id {
			g.docs = append(g.docs[:i], g.docs[i+1:]...)
			break
		}
	}
	return nil
}

// fakeFolderGateway implements remote.FolderGateway over a flat list.
type fakeFolderGateway struct {
	mu        sync.Mutex
	folders   []models.Folder
	moveCalls int
	moveErr   error
	deleteErr error
}

func (g *fakeFolderGateway) Tree(ctx context.Context, siteID string) ([]models.Folder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Folder(nil), g.folders...), nil
}

func (g *fakeFolderGateway) Create(ctx context.Context, req *remote.CreateFolderRequest) (*models.Folder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	folder := models.Folder{
		ID:       fmt.Sprintf("folder-%d", len(g.folders)+1),
		SiteID:   req.SiteID,
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	g.folders = append(g.folders, folder)
	return &folder, nil
}

func (g *fakeFolderGateway) Update(ctx context.Context, folderID string, req *remote.UpdateFolderRequest) (*models.Folder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.folders {
		if g.folders[i].ID == folderID {
			g.folders[i].Name = req.Name
			folder := g.folders[i]
			return &folder, nil
		}
	}
	return nil, fmt.Errorf("folder %s not found", folderID)
}

func (g *fakeFolderGateway) Delete(ctx context.Context, folderID string, recursive bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i := range g.folders {
		if g.folders[i].ID == folderID {
			g.folders = append(g.folders[:i], g.folders[i+1:]...)
			break
		}
	}
	return nil
}

func (g *fakeFolderGateway) Move(ctx context.Context, folderID string, newParentID *string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.moveCalls++
	if g.moveErr != nil {
		return g.moveErr
	}
	for i := range g.folders {
		if g.folders[i].ID == folderID {
			g.folders[i].ParentID = newParentID
		}
	}
	return nil
}

// fakePreviewGateway serves canned payloads and counts fetches.
type fakePreviewGateway struct {
	mu       sync.Mutex
	payloads map[string]*models.PreviewPayload
	err      error
	calls    int
	// release, when non-nil, blocks fetches until closed.
	release chan struct{}
}

func (g *fakePreviewGateway) FetchPreview(ctx context.Context, documentID string) (*models.PreviewPayload, error) {
	if g.release != nil {
		<-g.release
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if payload, ok := g.payloads[documentID]; ok {
		copied := *payload
		return &copied, nil
	}
	return &models.PreviewPayload{}, nil
}

// fakeTagGateway serves a fixed statistics feed.
type fakeTagGateway struct {
	usages []models.TagUsage
	err    error
}

func (g *fakeTagGateway) Statistics(ctx context.Context) ([]models.TagUsage, error) {
	if g.err != nil {
		return nil, g.err
	}
	return append([]models.TagUsage(nil), g.usages...), nil
}
