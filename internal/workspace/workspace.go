// Package workspace is the screen-level orchestrator for the document
// manager: it owns one site's catalog and folder tree, wires the
// upload, preview, metadata and tag components together, and enforces
// the one-outstanding-mutation rule per target. Credentials and the
// active site arrive as explicit parameters; nothing here reads
// ambient globals.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"heritageguard/internal/auth"
	"heritageguard/internal/categories"
	"heritageguard/internal/domain"
	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
	svc "heritageguard/internal/service/docsystem"
)

// ErrOperationInFlight is returned when a mutating operation is
// requested while an identical one is still outstanding for the same
// target.
var ErrOperationInFlight = errors.New("this operation is already in progress")

// Workspace composes the document components into the screen workflow.
type Workspace struct {
	session *auth.Session
	logger  *slog.Logger

	docGateway remote.DocumentGateway

	Catalog *svc.DocumentCatalog
	Tree    *svc.FolderTreeService
	Preview *svc.PreviewResolver
	Editor  *svc.MetadataEditor
	Tags    *svc.TagStatsService

	events chan Event

	mu             sync.Mutex
	siteID         string
	selectedFolder *string // nil = root/unfiled view
	inflight       map[string]bool
}

// Config wires the workspace's collaborators.
type Config struct {
	Session    *auth.Session
	Documents  remote.DocumentGateway
	Folders    remote.FolderGateway
	Previews   remote.PreviewGateway
	TagStats   remote.TagGateway
	Categories *categories.Registry
	Logger     *slog.Logger
}

// New builds a workspace from its collaborators. No data is fetched
// until Open is called for a site.
func New(cfg Config) *Workspace {
	catalog := svc.NewDocumentCatalog(cfg.Documents, cfg.Logger)
	return &Workspace{
		session:    cfg.Session,
		logger:     cfg.Logger,
		docGateway: cfg.Documents,
		Catalog:    catalog,
		Tree:       svc.NewFolderTreeService(cfg.Folders, catalog, cfg.Logger),
		Preview:    svc.NewPreviewResolver(cfg.Previews, cfg.Logger),
		Editor:     svc.NewMetadataEditor(cfg.Documents, cfg.Categories, cfg.Logger),
		Tags:       svc.NewTagStatsService(cfg.TagStats, cfg.Logger),
		events:     make(chan Event, 64),
		inflight:   make(map[string]bool),
	}
}

// Events is the workspace's outbound intent channel.
func (w *Workspace) Events() <-chan Event {
	return w.events
}

// Open loads (or switches to) a site. Switching discards both caches
// and reloads them from scratch; nothing is shared across sites.
func (w *Workspace) Open(ctx context.Context, siteID string) error {
	if siteID == "" {
		return &domain.ValidationError{Message: "a site id is required"}
	}

	if err := w.Catalog.Load(ctx, siteID); err != nil {
		return err
	}
	if err := w.Tree.Load(ctx, siteID); err != nil {
		return err
	}
	// Tag statistics are cross-site decoration for the tag picker; a
	// failure here must not block opening the site.
	if err := w.Tags.Load(ctx); err != nil {
		w.logger.Warn("tag statistics unavailable", "error", err)
	}

	w.mu.Lock()
	w.siteID = siteID
	w.selectedFolder = nil
	w.mu.Unlock()

	w.Preview.Close()
	w.emit(newEvent(EventSiteSwitched, siteID, "", nil))
	return nil
}

// SiteID returns the open site.
func (w *Workspace) SiteID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.siteID
}

// SelectFolder changes the folder view. nil selects the root/unfiled
// view. Selection is workspace state, separate from the tree itself.
func (w *Workspace) SelectFolder(folderID *string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectedFolder = folderID
}

// SelectedFolder returns the current folder selection.
func (w *Workspace) SelectedFolder() *string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedFolder
}

// VisibleDocuments returns the documents of the selected folder after
// applying the query/category filter.
func (w *Workspace) VisibleDocuments(query, category string) []models.Document {
	w.mu.Lock()
	selected := ""
	if w.selectedFolder != nil {
		selected = *w.selectedFolder
	}
	w.mu.Unlock()

	filtered := w.Catalog.Filter(query, category)
	var out []models.Document
	for _, doc := range filtered {
		switch {
		case selected == "" && doc.FolderID == nil:
			out = append(out, doc)
		case doc.FolderID != nil && *doc.FolderID == selected:
			out = append(out, doc)
		}
	}
	return out
}

// UploadResult pairs the staging report with the settled outcome.
// Outcome is nil when nothing passed validation.
type UploadResult struct {
	Staged  *svc.StagedBatch
	Outcome *models.UploadOutcome
}

// UploadBatch stages and submits a batch of files into the selected
// folder. Successes merge into the catalog as soon as the batch
// settles, even if the initiating view has gone away; failures come
// back per file.
func (w *Workspace) UploadBatch(ctx context.Context, files []models.CandidateFile, meta models.UploadMetadata, onProgress svc.ProgressFunc) (*UploadResult, error) {
	w.mu.Lock()
	siteID := w.siteID
	if meta.FolderID == nil {
		meta.FolderID = w.selectedFolder
	}
	w.mu.Unlock()

	key := "upload:" + siteID
	if !w.begin(key) {
		return nil, ErrOperationInFlight
	}
	defer w.end(key)

	session := svc.NewUploadSession(w.docGateway, w.logger)
	staged := session.Stage(files)
	if len(staged.Accepted) == 0 {
		return &UploadResult{Staged: staged}, nil
	}

	outcome, err := session.Submit(ctx, siteID, meta, onProgress)
	if err != nil {
		return nil, err
	}

	w.Catalog.ApplyUploadResult(outcome.Succeeded)
	w.emit(newEvent(EventUploadSettled, siteID, session.BatchID(), firstFailure(outcome)))
	return &UploadResult{Staged: staged, Outcome: outcome}, nil
}

func firstFailure(outcome *models.UploadOutcome) error {
	if len(outcome.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files failed to upload",
		len(outcome.Failed), len(outcome.Failed)+len(outcome.Succeeded))
}

// DeleteDocument removes a document and reconciles the cache. A
// NotFound answer means local state was stale; the catalog is
// refreshed to match the server.
func (w *Workspace) DeleteDocument(ctx context.Context, id string) error {
	key := "delete-doc:" + id
	if !w.begin(key) {
		return ErrOperationInFlight
	}
	defer w.end(key)

	err := w.Catalog.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		w.refreshCatalog(ctx)
	}
	w.emit(newEvent(EventDocumentDeleted, w.SiteID(), id, err))
	return err
}

// SubmitMetadata validates and persists a metadata form, then projects
// the confirmed updates onto the catalog. NotFound failures trigger a
// catalog refresh to drop stale rows.
func (w *Workspace) SubmitMetadata(ctx context.Context, form *svc.MetadataForm) (*svc.EditOutcome, error) {
	key := "edit:" + fmt.Sprint(form.TargetIDs)
	if !w.begin(key) {
		return nil, ErrOperationInFlight
	}
	defer w.end(key)

	outcome, err := w.Editor.Submit(ctx, form)
	if err != nil {
		return nil, err
	}

	w.Catalog.ReplaceDocuments(outcome.Updated)
	for _, failure := range outcome.Failed {
		if errors.Is(failure.Err, domain.ErrNotFound) {
			w.refreshCatalog(ctx)
			break
		}
	}

	w.emit(newEvent(EventDocumentsEdited, w.SiteID(), "", nil))
	return outcome, nil
}

// CreateFolder adds a folder under the given parent.
func (w *Workspace) CreateFolder(ctx context.Context, name string, parentID *string) (*models.Folder, error) {
	key := "folder-create:" + name
	if !w.begin(key) {
		return nil, ErrOperationInFlight
	}
	defer w.end(key)

	folder, err := w.Tree.Create(ctx, name, parentID)
	if err != nil {
		return nil, err
	}
	w.emit(newEvent(EventFolderCreated, w.SiteID(), folder.ID, nil))
	return folder, nil
}

// RenameFolder renames a folder.
func (w *Workspace) RenameFolder(ctx context.Context, folderID, name string) error {
	key := "folder-rename:" + folderID
	if !w.begin(key) {
		return ErrOperationInFlight
	}
	defer w.end(key)

	err := w.Tree.Rename(ctx, folderID, name)
	w.emit(newEvent(EventFolderRenamed, w.SiteID(), folderID, err))
	return err
}

// MoveFolder re-parents a folder, with the cyclic-move guard applied
// before the server is called.
func (w *Workspace) MoveFolder(ctx context.Context, folderID string, newParentID *string) error {
	key := "folder-move:" + folderID
	if !w.begin(key) {
		return ErrOperationInFlight
	}
	defer w.end(key)

	err := w.Tree.Move(ctx, folderID, newParentID)
	w.emit(newEvent(EventFolderMoved, w.SiteID(), folderID, err))
	return err
}

// DeleteFolder removes a folder. After a recursive delete the catalog
// is reloaded too: the server detaches the contained documents and
// the cache must follow.
func (w *Workspace) DeleteFolder(ctx context.Context, folderID string, recursive bool) error {
	key := "folder-delete:" + folderID
	if !w.begin(key) {
		return ErrOperationInFlight
	}
	defer w.end(key)

	if err := w.Tree.Delete(ctx, folderID, recursive); err != nil {
		w.emit(newEvent(EventFolderDeleted, w.SiteID(), folderID, err))
		return err
	}

	w.mu.Lock()
	if w.selectedFolder != nil && *w.selectedFolder == folderID {
		w.selectedFolder = nil
	}
	w.mu.Unlock()

	if recursive {
		w.refreshCatalog(ctx)
	}
	w.emit(newEvent(EventFolderDeleted, w.SiteID(), folderID, nil))
	return nil
}

// OpenPreview makes a document the active preview.
func (w *Workspace) OpenPreview(ctx context.Context, doc *models.Document) error {
	err := w.Preview.Open(ctx, doc)
	w.emit(newEvent(EventPreviewOpened, w.SiteID(), doc.ID, err))
	return err
}

func (w *Workspace) refreshCatalog(ctx context.Context) {
	siteID := w.SiteID()
	if siteID == "" {
		return
	}
	if err := w.Catalog.Load(ctx, siteID); err != nil {
		w.logger.Warn("catalog refresh failed", "site_id", siteID, "error", err)
		return
	}
	w.emit(newEvent(EventCatalogRefreshed, siteID, "", nil))
}

// begin marks a mutating operation as in flight for its target;
// returns false when one is already outstanding.
func (w *Workspace) begin(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[key] {
		return false
	}
	w.inflight[key] = true
	return true
}

func (w *Workspace) end(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, key)
}

// emit publishes without blocking; when no consumer keeps up the event
// is dropped rather than stalling a mutation.
func (w *Workspace) emit(event Event) {
	select {
	case w.events <- event:
	default:
		w.logger.Debug("event dropped", "kind", string(event.Kind))
	}
}
