package workspace

import (
	"github.com/google/uuid"
)

// EventKind is the typed set of intents flowing out of the workspace.
// Components emit these on one channel instead of holding references
// to sibling components.
type EventKind string

const (
	EventSiteSwitched     EventKind = "site_switched"
	EventUploadSettled    EventKind = "upload_settled"
	EventDocumentDeleted  EventKind = "document_deleted"
	EventDocumentsEdited  EventKind = "documents_edited"
	EventFolderCreated    EventKind = "folder_created"
	EventFolderRenamed    EventKind = "folder_renamed"
	EventFolderMoved      EventKind = "folder_moved"
	EventFolderDeleted    EventKind = "folder_deleted"
	EventPreviewOpened    EventKind = "preview_opened"
	EventCatalogRefreshed EventKind = "catalog_refreshed"
)

// Event is one workspace notification. Err is set when the triggering
// operation failed; consumers decide how to surface it.
type Event struct {
	ID     string
	Kind   EventKind
	SiteID string
	// Target identifies the affected document or folder where that is
	// meaningful for the kind.
	Target string
	Err    error
}

func newEvent(kind EventKind, siteID, target string, err error) Event {
	return Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		SiteID: siteID,
		Target: target,
		Err:    err,
	}
}
