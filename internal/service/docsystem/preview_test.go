package docsystem

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	models "heritageguard/internal/domain/models/docsystem"
)

func TestClassifyDocument(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		want     models.PreviewKind
	}{
		{"extension beats mime", "scan.jpg", "application/octet-stream", models.PreviewImage},
		{"extension is case-insensitive", "photo.JPG", "", models.PreviewImage},
		{"pdf extension", "report.pdf", "", models.PreviewPDF},
		{"text extension", "notes.md", "", models.PreviewText},
		{"video extension", "tour.mp4", "", models.PreviewVideo},
		{"audio extension", "interview.flac", "", models.PreviewAudio},
		{"office extension", "inventory.xlsx", "", models.PreviewOffice},
		{"no extension falls back to mime", "report", "application/pdf", models.PreviewPDF},
		{"image mime prefix", "blob", "image/webp", models.PreviewImage},
		{"text mime prefix", "data", "text/csv", models.PreviewText},
		{"unknown extension falls through to mime", "clip.mkv", "video/x-matroska", models.PreviewVideo},
		{"nothing matches", "archive.zip", "application/zip", models.PreviewUnsupported},
		{"trailing dot has no extension", "odd.", "", models.PreviewUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &models.Document{FileName: tt.fileName, FileType: tt.mimeType}
			if got := ClassifyDocument(doc); got != tt.want {
				t.Fatalf("ClassifyDocument(%q, %q) = %s, want %s", tt.fileName, tt.mimeType, got, tt.want)
			}
		})
	}
}

func TestOpenTransitionsToReady(t *testing.T) {
	gateway := &fakePreviewGateway{payloads: map[string]*models.PreviewPayload{
		"doc-1": {TotalPages: 12},
	}}
	resolver := NewPreviewResolver(gateway, testLogger())

	doc := &models.Document{ID: "doc-1", FileName: "report.pdf"}
	if err := resolver.Open(context.Background(), doc); err != nil {
		t.Fatalf("Open: %v", err)
	}

	state, payload, err := resolver.State()
	if state != PaneReady || err != nil {
		t.Fatalf("state = %s err = %v, want ready", state, err)
	}
	if payload.Kind != models.PreviewPDF {
		t.Fatalf("payload kind = %s, want pdf", payload.Kind)
	}
	if got := resolver.Viewer(); got.TotalPages != 12 || got.CurrentPage != 1 {
		t.Fatalf("viewer = %+v, want 12 pages starting at 1", got)
	}
}

func TestOpenUnsupportedSkipsFetch(t *testing.T) {
	gateway := &fakePreviewGateway{}
	resolver := NewPreviewResolver(gateway, testLogger())

	doc := &models.Document{ID: "doc-1", FileName: "archive.zip", FileType: "application/zip"}
	if err := resolver.Open(context.Background(), doc); err != nil {
		t.Fatalf("Open: %v", err)
	}

	state, payload, _ := resolver.State()
	if state != PaneReady || payload.Kind != models.PreviewUnsupported {
		t.Fatalf("state = %s payload = %+v, want immediate unsupported-ready", state, payload)
	}
	if gateway.calls != 0 {
		t.Fatal("unsupported document still hit the preview gateway")
	}
}

func TestOpenErrorState(t *testing.T) {
	fetchErr := errors.New("preview renderer offline")
	resolver := NewPreviewResolver(&fakePreviewGateway{err: fetchErr}, testLogger())

	doc := &models.Document{ID: "doc-1", FileName: "report.pdf"}
	if err := resolver.Open(context.Background(), doc); err == nil {
		t.Fatal("Open swallowed the fetch error")
	}

	state, payload, err := resolver.State()
	if state != PaneError || payload != nil || err == nil {
		t.Fatalf("state = %s payload = %v err = %v, want error state", state, payload, err)
	}
}

func TestStaleFetchIsDropped(t *testing.T) {
	release := make(chan struct{})
	gateway := &fakePreviewGateway{
		payloads: map[string]*models.PreviewPayload{
			"slow": {TotalPages: 99},
			"fast": {TotalPages: 2},
		},
		release: release,
	}
	resolver := NewPreviewResolver(gateway, testLogger())

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- resolver.Open(context.Background(), &models.Document{ID: "slow", FileName: "slow.pdf"})
	}()

	// Give the slow open time to mark itself active, then supersede it.
	time.Sleep(20 * time.Millisecond)
	fastDone := make(chan error, 1)
	go func() {
		fastDone <- resolver.Open(context.Background(), &models.Document{ID: "fast", FileName: "fast.pdf"})
	}()
	time.Sleep(20 * time.Millisecond)

	close(release)
	if err := <-slowDone; err != nil {
		t.Fatalf("superseded Open: %v", err)
	}
	if err := <-fastDone; err != nil {
		t.Fatalf("winning Open: %v", err)
	}

	// Whichever fetch finished last, the pane must show the document the
	// user opened last.
	_, payload, _ := resolver.State()
	if payload == nil || payload.TotalPages != 2 {
		t.Fatalf("payload = %+v, want the fast document's preview", payload)
	}
}

func TestViewerResetsOnDocumentChange(t *testing.T) {
	gateway := &fakePreviewGateway{payloads: map[string]*models.PreviewPayload{
		"a": {TotalPages: 10},
		"b": {TotalPages: 3},
	}}
	resolver := NewPreviewResolver(gateway, testLogger())

	if err := resolver.Open(context.Background(), &models.Document{ID: "a", FileName: "a.pdf"}); err != nil {
		t.Fatalf("Open a: %v", err)
	}
	resolver.ZoomIn()
	resolver.Rotate(true)
	resolver.GoToPage(7)

	if err := resolver.Open(context.Background(), &models.Document{ID: "b", FileName: "b.pdf"}); err != nil {
		t.Fatalf("Open b: %v", err)
	}

	viewer := resolver.Viewer()
	if viewer.Zoom != 1.0 || viewer.RotationDeg != 0 || viewer.CurrentPage != 1 {
		t.Fatalf("viewer did not reset on document change: %+v", viewer)
	}
	if viewer.TotalPages != 3 {
		t.Fatalf("viewer pages = %d, want the new document's 3", viewer.TotalPages)
	}
}

func TestZoomClamps(t *testing.T) {
	resolver := NewPreviewResolver(&fakePreviewGateway{}, testLogger())

	for i := 0; i < 50; i++ {
		resolver.ZoomIn()
	}
	if got := resolver.Viewer().Zoom; got != 5.0 {
		t.Fatalf("zoom after repeated zoom-in = %v, want clamp at 5.0", got)
	}

	for i := 0; i < 100; i++ {
		resolver.ZoomOut()
	}
	if got := resolver.Viewer().Zoom; got != 0.1 {
		t.Fatalf("zoom after repeated zoom-out = %v, want clamp at 0.1", got)
	}

	resolver.ZoomIn()
	if got := resolver.Viewer().Zoom; math.Abs(got-0.12) > 1e-9 {
		t.Fatalf("zoom-in from the floor = %v, want 0.12", got)
	}
}

func TestRotationAccumulates(t *testing.T) {
	resolver := NewPreviewResolver(&fakePreviewGateway{}, testLogger())

	for i := 0; i < 5; i++ {
		resolver.Rotate(true)
	}
	viewer := resolver.Viewer()
	if viewer.RotationDeg != 450 {
		t.Fatalf("rotation = %d, want raw 450", viewer.RotationDeg)
	}
	if viewer.NormalizedRotation() != 90 {
		t.Fatalf("normalized = %d, want 90", viewer.NormalizedRotation())
	}

	for i := 0; i < 7; i++ {
		resolver.Rotate(false)
	}
	viewer = resolver.Viewer()
	if viewer.RotationDeg != -180 {
		t.Fatalf("rotation = %d, want raw -180", viewer.RotationDeg)
	}
	if viewer.NormalizedRotation() != 180 {
		t.Fatalf("normalized = %d, want 180", viewer.NormalizedRotation())
	}
}

func TestPageNavigationBounds(t *testing.T) {
	gateway := &fakePreviewGateway{payloads: map[string]*models.PreviewPayload{
		"doc": {TotalPages: 3},
	}}
	resolver := NewPreviewResolver(gateway, testLogger())
	if err := resolver.Open(context.Background(), &models.Document{ID: "doc", FileName: "doc.pdf"}); err != nil {
		t.Fatalf("Open: %v", err)
	}

	resolver.PrevPage() // already at 1: no-op
	if got := resolver.Viewer().CurrentPage; got != 1 {
		t.Fatalf("page = %d after prev at start, want 1", got)
	}

	resolver.GoToPage(0) // out of range: no-op
	resolver.GoToPage(4) // out of range: no-op
	if got := resolver.Viewer().CurrentPage; got != 1 {
		t.Fatalf("page = %d after out-of-range jumps, want 1", got)
	}

	resolver.NextPage()
	resolver.NextPage()
	resolver.NextPage() // at last page: no-op
	if got := resolver.Viewer().CurrentPage; got != 3 {
		t.Fatalf("page = %d, want pinned at 3", got)
	}

	resolver.GoToPage(2)
	if got := resolver.Viewer().CurrentPage; got != 2 {
		t.Fatalf("page = %d, want 2", got)
	}
}

func TestCloseReturnsToIdle(t *testing.T) {
	gateway := &fakePreviewGateway{payloads: map[string]*models.PreviewPayload{
		"doc": {TotalPages: 2},
	}}
	resolver := NewPreviewResolver(gateway, testLogger())
	if err := resolver.Open(context.Background(), &models.Document{ID: "doc", FileName: "doc.pdf"}); err != nil {
		t.Fatalf("Open: %v", err)
	}

	resolver.Close()
	state, payload, err := resolver.State()
	if state != PaneIdle || payload != nil || err != nil {
		t.Fatalf("after Close: state = %s payload = %v err = %v", state, payload, err)
	}
}
