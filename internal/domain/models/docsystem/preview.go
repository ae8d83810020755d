package docsystem

// PreviewKind is the classified rendering mode of a document.
type PreviewKind string

const (
	PreviewImage       PreviewKind = "image"
	PreviewPDF         PreviewKind = "pdf"
	PreviewText        PreviewKind = "text"
	PreviewVideo       PreviewKind = "video"
	PreviewAudio       PreviewKind = "audio"
	PreviewOffice      PreviewKind = "office"
	PreviewUnsupported PreviewKind = "unsupported"
)

// PreviewPayload is the server-fetched preview data for one document.
// Which fields are populated depends on the classified kind: page count
// for pdf/office, raw text for text, duration for audio/video, a byte
// stream reference for image.
type PreviewPayload struct {
	Kind            PreviewKind `json:"kind"`
	Content         string      `json:"content,omitempty"`    // text kinds
	TotalPages      int         `json:"totalPages,omitempty"` // pdf/office
	DurationSeconds float64     `json:"duration,omitempty"`   // audio/video
	ContentURL      string      `json:"contentUrl,omitempty"` // image/video/audio stream
}
