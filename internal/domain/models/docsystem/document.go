package docsystem

import (
	"time"
)

// LocalizedText holds the per-language variants of a free-text field.
// The platform supports English, Kinyarwanda and French.
type LocalizedText struct {
	En string `json:"en"`
	Rw string `json:"rw"`
	Fr string `json:"fr"`
}

// Document represents one uploaded file attached to a heritage site.
// The server owns the record; the client holds a read cache plus local
// projections applied after confirmed server responses.
type Document struct {
	ID          string        `json:"id"`
	SiteID      string        `json:"siteId"`
	FolderID    *string       `json:"folderId"` // NULL = unfiled/root
	FileName    string        `json:"fileName"`
	FileType    string        `json:"fileType"` // MIME type as reported by the server
	FileSize    int64         `json:"fileSize"`
	Category    string        `json:"category"`
	Description LocalizedText `json:"description"`
	Tags        []string      `json:"tags"`
	IsPublic    bool          `json:"isPublic"`
	UploadDate  time.Time     `json:"uploadDate"`
	UploadedBy  string        `json:"uploadedBy"`

	// Heritage-specific catalog fields, all optional.
	CulturalSignificance string            `json:"culturalSignificance,omitempty"`
	HistoricalPeriod     string            `json:"historicalPeriod,omitempty"`
	GeographicalRegion   string            `json:"geographicalRegion,omitempty"`
	Creator              string            `json:"creator,omitempty"`
	CreationDate         string            `json:"creationDate,omitempty"`    // ISO date
	AcquisitionDate      string            `json:"acquisitionDate,omitempty"` // ISO date
	Condition            string            `json:"condition,omitempty"`
	Materials            []string          `json:"materials,omitempty"`
	Dimensions           string            `json:"dimensions,omitempty"`
	CopyrightStatus      string            `json:"copyrightStatus,omitempty"`
	AccessRestrictions   string            `json:"accessRestrictions,omitempty"`
	PreservationNotes    string            `json:"preservationNotes,omitempty"`
	CatalogNumber        string            `json:"catalogNumber,omitempty"`
	CustomFields         map[string]string `json:"customFields,omitempty"`
}

// DocumentPatch is a partial document update. Nil fields are left
// untouched on the target; present fields replace the prior value
// entirely (overwrite, never a field-level merge of sub-objects).
type DocumentPatch struct {
	FileName    *string        `json:"fileName,omitempty"`
	FolderID    *string        `json:"folderId,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Description *LocalizedText `json:"description,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
	IsPublic    *bool          `json:"isPublic,omitempty"`

	CulturalSignificance *string            `json:"culturalSignificance,omitempty"`
	HistoricalPeriod     *string            `json:"historicalPeriod,omitempty"`
	GeographicalRegion   *string            `json:"geographicalRegion,omitempty"`
	Creator              *string            `json:"creator,omitempty"`
	CreationDate         *string            `json:"creationDate,omitempty"`
	AcquisitionDate      *string            `json:"acquisitionDate,omitempty"`
	Condition            *string            `json:"condition,omitempty"`
	Materials            *[]string          `json:"materials,omitempty"`
	Dimensions           *string            `json:"dimensions,omitempty"`
	CopyrightStatus      *string            `json:"copyrightStatus,omitempty"`
	AccessRestrictions   *string            `json:"accessRestrictions,omitempty"`
	PreservationNotes    *string            `json:"preservationNotes,omitempty"`
	CatalogNumber        *string            `json:"catalogNumber,omitempty"`
	CustomFields         *map[string]string `json:"customFields,omitempty"`
}

// Apply projects the patch onto a document, overwriting only the fields
// present in the patch.
func (p *DocumentPatch) Apply(doc *Document) {
	if p.FileName != nil {
		doc.FileName = *p.FileName
	}
	if p.FolderID != nil {
		doc.FolderID = p.FolderID
	}
	if p.Category != nil {
		doc.Category = *p.Category
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.Tags != nil {
		doc.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.IsPublic != nil {
		doc.IsPublic = *p.IsPublic
	}
	if p.CulturalSignificance != nil {
		doc.CulturalSignificance = *p.CulturalSignificance
	}
	if p.HistoricalPeriod != nil {
		doc.HistoricalPeriod = *p.HistoricalPeriod
	}
	if p.GeographicalRegion != nil {
		doc.GeographicalRegion = *p.GeographicalRegion
	}
	if p.Creator != nil {
		doc.Creator = *p.Creator
	}
	if p.CreationDate != nil {
		doc.CreationDate = *p.CreationDate
	}
	if p.AcquisitionDate != nil {
		doc.AcquisitionDate = *p.AcquisitionDate
	}
	if p.Condition != nil {
		doc.Condition = *p.Condition
	}
	if p.Materials != nil {
		doc.Materials = append([]string(nil), (*p.Materials)...)
	}
	if p.Dimensions != nil {
		doc.Dimensions = *p.Dimensions
	}
	if p.CopyrightStatus != nil {
		doc.CopyrightStatus = *p.CopyrightStatus
	}
	if p.AccessRestrictions != nil {
		doc.AccessRestrictions = *p.AccessRestrictions
	}
	if p.PreservationNotes != nil {
		doc.PreservationNotes = *p.PreservationNotes
	}
	if p.CatalogNumber != nil {
		doc.CatalogNumber = *p.CatalogNumber
	}
	if p.CustomFields != nil {
		doc.CustomFields = *p.CustomFields
	}
}
