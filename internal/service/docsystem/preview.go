package docsystem

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"

	"golang.org/x/sync/singleflight"
)

// Extension→kind table, checked before the MIME prefix because the
// server's MIME metadata is sometimes absent or generic.
var extensionKinds = map[string]models.PreviewKind{
	"jpg": models.PreviewImage, "jpeg": models.PreviewImage, "png": models.PreviewImage,
	"gif": models.PreviewImage, "webp": models.PreviewImage, "svg": models.PreviewImage,
	"bmp": models.PreviewImage,

	"pdf": models.PreviewPDF,

	"txt": models.PreviewText, "csv": models.PreviewText, "json": models.PreviewText,
	"xml": models.PreviewText, "md": models.PreviewText, "log": models.PreviewText,

	"mp4": models.PreviewVideo, "webm": models.PreviewVideo, "ogv": models.PreviewVideo,
	"avi": models.PreviewVideo, "mov": models.PreviewVideo,

	"mp3": models.PreviewAudio, "wav": models.PreviewAudio, "ogg": models.PreviewAudio,
	"flac": models.PreviewAudio, "m4a": models.PreviewAudio,

	"doc": models.PreviewOffice, "docx": models.PreviewOffice, "xls": models.PreviewOffice,
	"xlsx": models.PreviewOffice, "ppt": models.PreviewOffice, "pptx": models.PreviewOffice,
}

// ClassifyDocument returns the rendering mode for a document: first by
// file extension, then by MIME type prefix, else unsupported.
func ClassifyDocument(doc *models.Document) models.PreviewKind {
	if dot := strings.LastIndex(doc.FileName, "."); dot >= 0 && dot < len(doc.FileName)-1 {
		ext := strings.ToLower(doc.FileName[dot+1:])
		if kind, ok := extensionKinds[ext]; ok {
			return kind
		}
	}

	mime := strings.ToLower(doc.FileType)
	switch {
	case strings.HasPrefix(mime, "image/"):
		return models.PreviewImage
	case mime == "application/pdf":
		return models.PreviewPDF
	case strings.HasPrefix(mime, "text/"):
		return models.PreviewText
	case strings.HasPrefix(mime, "video/"):
		return models.PreviewVideo
	case strings.HasPrefix(mime, "audio/"):
		return models.PreviewAudio
	}
	return models.PreviewUnsupported
}

// PaneState is the preview pane's lifecycle state.
type PaneState string

const (
	PaneIdle    PaneState = "idle"
	PaneLoading PaneState = "loading"
	PaneReady   PaneState = "ready"
	PaneError   PaneState = "error"
)

// Zoom and rotation behavior of the viewer.
const (
	zoomStep = 1.2
	zoomMin  = 0.1
	zoomMax  = 5.0
)

// ViewerState is the transform state of the preview viewer. It resets
// to defaults on every document change and persists across zoom and
// rotate operations within the same document. Rotation accumulates
// beyond 360; the renderer normalizes, not the model.
type ViewerState struct {
	Zoom        float64
	RotationDeg int
	CurrentPage int
	TotalPages  int
}

func defaultViewerState() ViewerState {
	return ViewerState{Zoom: 1.0, CurrentPage: 1, TotalPages: 1}
}

// NormalizedRotation is the renderer-facing rotation in [0, 360).
func (v ViewerState) NormalizedRotation() int {
	r := v.RotationDeg % 360
	if r < 0 {
		r += 360
	}
	return r
}

// PreviewResolver classifies documents into rendering modes and holds
// the preview payload plus viewer state for the active document.
type PreviewResolver struct {
	gateway remote.PreviewGateway
	logger  *slog.Logger
	group   singleflight.Group

	mu       sync.Mutex
	activeID string
	state    PaneState
	payload  *models.PreviewPayload
	err      error
	viewer   ViewerState
}

// NewPreviewResolver creates a resolver bound to the preview gateway.
func NewPreviewResolver(gateway remote.PreviewGateway, logger *slog.Logger) *PreviewResolver {
	return &PreviewResolver{
		gateway: gateway,
		logger:  logger,
		state:   PaneIdle,
		viewer:  defaultViewerState(),
	}
}

// Open makes a document the active one and fetches its preview
// payload. Opening always re-enters Loading and resets the viewer
// transform. Concurrent opens of the same document share one fetch;
// when the active document changes mid-flight the stale result is
// dropped (last request wins).
func (r *PreviewResolver) Open(ctx context.Context, doc *models.Document) error {
	kind := ClassifyDocument(doc)

	r.mu.Lock()
	r.activeID = doc.ID
	r.state = PaneLoading
	r.payload = nil
	r.err = nil
	r.viewer = defaultViewerState()
	r.mu.Unlock()

	if kind == models.PreviewUnsupported {
		// Nothing to fetch; the pane renders a download prompt.
		r.mu.Lock()
		r.state = PaneReady
		r.payload = &models.PreviewPayload{Kind: models.PreviewUnsupported}
		r.mu.Unlock()
		return nil
	}

	result, err, _ := r.group.Do(doc.ID, func() (any, error) {
		return r.gateway.FetchPreview(ctx, doc.ID)
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeID != doc.ID {
		// The user moved on while this fetch was in flight.
		return nil
	}

	if err != nil {
		r.state = PaneError
		r.err = err
		r.logger.Warn("preview fetch failed", "document_id", doc.ID, "error", err)
		return err
	}

	payload := result.(*models.PreviewPayload)
	payload.Kind = kind
	r.payload = payload
	r.state = PaneReady
	if payload.TotalPages > 0 {
		r.viewer.TotalPages = payload.TotalPages
	}
	return nil
}

// Close returns the pane to Idle and discards the active payload.
func (r *PreviewResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeID = ""
	r.state = PaneIdle
	r.payload = nil
	r.err = nil
	r.viewer = defaultViewerState()
}

// State returns the pane state, the active payload (nil unless Ready)
// and the fetch error (nil unless Error).
func (r *PreviewResolver) State() (PaneState, *models.PreviewPayload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.payload, r.err
}

// Viewer returns a snapshot of the viewer transform state.
func (r *PreviewResolver) Viewer() ViewerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewer
}

// ZoomIn multiplies zoom by 1.2, clamped to the upper bound.
func (r *PreviewResolver) ZoomIn() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewer.Zoom = clampZoom(r.viewer.Zoom * zoomStep)
}

// ZoomOut divides zoom by 1.2, clamped to the lower bound.
func (r *PreviewResolver) ZoomOut() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewer.Zoom = clampZoom(r.viewer.Zoom / zoomStep)
}

// Rotate turns the view by ±90°. The stored value accumulates without
// bound.
func (r *PreviewResolver) Rotate(clockwise bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if clockwise {
		r.viewer.RotationDeg += 90
	} else {
		r.viewer.RotationDeg -= 90
	}
}

// GoToPage moves pagination to the given page. Navigating past either
// bound is a no-op, not an error.
func (r *PreviewResolver) GoToPage(page int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if page < 1 || page > r.viewer.TotalPages {
		return
	}
	r.viewer.CurrentPage = page
}

// NextPage advances one page if possible.
func (r *PreviewResolver) NextPage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.viewer.CurrentPage < r.viewer.TotalPages {
		r.viewer.CurrentPage++
	}
}

// PrevPage goes back one page if possible.
func (r *PreviewResolver) PrevPage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.viewer.CurrentPage > 1 {
		r.viewer.CurrentPage--
	}
}

func clampZoom(z float64) float64 {
	if z < zoomMin {
		return zoomMin
	}
	if z > zoomMax {
		return zoomMax
	}
	return z
}
