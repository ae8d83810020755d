package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"heritageguard/internal/categories"
	"heritageguard/internal/config"
	"heritageguard/internal/domain"
	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// catalogNumberPattern is the enforced contract for catalog numbers.
// Some legacy UI copy shows "RH-2024-001" as an example; that string
// does not satisfy this pattern and the pattern wins.
var catalogNumberPattern = regexp.MustCompile(`^[A-Z]{2,4}-\d{4,6}$`)

const isoDateLayout = "2006-01-02"

// MetadataForm is the editable metadata record for one document or a
// batch. In batch mode fields start blank and the resulting patch is
// applied identically to every target (overwrite, not merge).
type MetadataForm struct {
	BatchMode bool
	TargetIDs []string

	FileName    string
	Category    string
	Description models.LocalizedText
	Tags        []string
	IsPublic    bool

	CulturalSignificance string
	HistoricalPeriod     string
	GeographicalRegion   string
	Creator              string
	CreationDate         string
	AcquisitionDate      string
	Condition            string
	Materials            []string
	Dimensions           string
	CopyrightStatus      string
	AccessRestrictions   string
	PreservationNotes    string
	CatalogNumber        string
	CustomFields         map[string]string
}

// InitFromDocument builds a single-document form, copying every field
// verbatim. Absent collections default to empty lists so the form
// never carries nil slices.
func InitFromDocument(doc *models.Document) *MetadataForm {
	form := &MetadataForm{
		TargetIDs:            []string{doc.ID},
		FileName:             doc.FileName,
		Category:             doc.Category,
		Description:          doc.Description,
		Tags:                 append([]string{}, doc.Tags...),
		IsPublic:             doc.IsPublic,
		CulturalSignificance: doc.CulturalSignificance,
		HistoricalPeriod:     doc.HistoricalPeriod,
		GeographicalRegion:   doc.GeographicalRegion,
		Creator:              doc.Creator,
		CreationDate:         doc.CreationDate,
		AcquisitionDate:      doc.AcquisitionDate,
		Condition:            doc.Condition,
		Materials:            append([]string{}, doc.Materials...),
		Dimensions:           doc.Dimensions,
		CopyrightStatus:      doc.CopyrightStatus,
		AccessRestrictions:   doc.AccessRestrictions,
		PreservationNotes:    doc.PreservationNotes,
		CatalogNumber:        doc.CatalogNumber,
		CustomFields:         map[string]string{},
	}
	for k, v := range doc.CustomFields {
		form.CustomFields[k] = v
	}
	return form
}

// InitFromBatch builds a batch form. Shared values are deliberately
// NOT pre-populated from the member documents: every field starts
// blank and whatever the user fills in overwrites all targets on
// submit.
func InitFromBatch(docs []models.Document) *MetadataForm {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return &MetadataForm{
		BatchMode:    true,
		TargetIDs:    ids,
		Tags:         []string{},
		Materials:    []string{},
		CustomFields: map[string]string{},
	}
}

// AddTag appends a tag. Duplicates (case-sensitive exact match) and
// blank input are silently ignored.
func (f *MetadataForm) AddTag(tag string) {
	f.Tags = appendUnique(f.Tags, tag)
}

// RemoveTag drops a tag if present.
func (f *MetadataForm) RemoveTag(tag string) {
	f.Tags = removeValue(f.Tags, tag)
}

// AddMaterial appends a material with the same duplicate/blank rules
// as tags.
func (f *MetadataForm) AddMaterial(material string) {
	f.Materials = appendUnique(f.Materials, material)
}

// RemoveMaterial drops a material if present.
func (f *MetadataForm) RemoveMaterial(material string) {
	f.Materials = removeValue(f.Materials, material)
}

func appendUnique(list []string, value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return list
	}
	for _, existing := range list {
		if existing == trimmed {
			return list
		}
	}
	return append(list, trimmed)
}

func removeValue(list []string, value string) []string {
	for i, existing := range list {
		if existing == value {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// EditFailure records one batch target whose update did not settle
// successfully.
type EditFailure struct {
	DocumentID string
	Err        error
}

// EditOutcome aggregates a settled metadata submission.
type EditOutcome struct {
	Updated []models.Document
	Failed  []EditFailure
}

// MetadataEditor validates metadata forms and persists them through
// the document gateway.
type MetadataEditor struct {
	gateway  remote.DocumentGateway
	registry *categories.Registry
	logger   *slog.Logger
}

// NewMetadataEditor creates a metadata editor.
func NewMetadataEditor(gateway remote.DocumentGateway, registry *categories.Registry, logger *slog.Logger) *MetadataEditor {
	return &MetadataEditor{gateway: gateway, registry: registry, logger: logger}
}

// Validate checks the form against the metadata rules. All rules must
// pass; errors are joined into one ValidationError message suitable
// for a pre-submit summary.
func (e *MetadataEditor) Validate(form *MetadataForm) error {
	rules := []*validation.FieldRules{
		validation.Field(&form.Category,
			validation.Required.Error("category is required"),
			validation.By(e.knownCategory),
		),
		validation.Field(&form.CatalogNumber,
			validation.Match(catalogNumberPattern).
				Error("catalog number must be 2-4 uppercase letters, a hyphen, then 4-6 digits"),
		),
	}
	if !form.BatchMode {
		rules = append(rules, validation.Field(&form.FileName,
			validation.Required.Error("file name is required"),
			validation.Length(1, config.MaxFileNameLength),
		))
	}

	if err := validation.ValidateStruct(form, rules...); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}

	if err := validateDateOrder(form.CreationDate, form.AcquisitionDate); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

func (e *MetadataEditor) knownCategory(value any) error {
	category, _ := value.(string)
	if category == "" || e.registry == nil {
		return nil
	}
	if !e.registry.IsValidDocumentCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}

// validateDateOrder enforces acquisitionDate >= creationDate when both
// are present. Equal dates pass.
func validateDateOrder(creation, acquisition string) error {
	if creation == "" || acquisition == "" {
		return nil
	}
	created, err := time.Parse(isoDateLayout, creation)
	if err != nil {
		return fmt.Errorf("creation date %q is not a valid date", creation)
	}
	acquired, err := time.Parse(isoDateLayout, acquisition)
	if err != nil {
		return fmt.Errorf("acquisition date %q is not a valid date", acquisition)
	}
	if acquired.Before(created) {
		return fmt.Errorf("acquisition date must not precede the creation date")
	}
	return nil
}

// Submit validates the form and issues one update per target document
// with the identical patch body. Batch submissions wait for every
// update to settle and tolerate partial failure; the error return is
// reserved for validation and misuse.
//
// Submit panics on a form with no targets: that is a caller bug.
func (e *MetadataEditor) Submit(ctx context.Context, form *MetadataForm) (*EditOutcome, error) {
	if len(form.TargetIDs) == 0 {
		panic("docsystem: MetadataEditor.Submit called with no target documents")
	}
	if err := e.Validate(form); err != nil {
		return nil, err
	}

	patch := form.buildPatch()
	outcome := &EditOutcome{}

	if !form.BatchMode {
		doc, err := e.gateway.Update(ctx, form.TargetIDs[0], patch)
		if err != nil {
			return nil, err
		}
		outcome.Updated = []models.Document{*doc}
		e.logger.Info("document metadata updated", "id", doc.ID)
		return outcome, nil
	}

	// All-settled join over the batch, same partial-failure tolerance
	// as uploads.
	results := make([]struct {
		doc *models.Document
		err error
	}, len(form.TargetIDs))

	var wg sync.WaitGroup
	for i, id := range form.TargetIDs {
		wg.Add(1)
		go func(index int, docID string) {
			defer wg.Done()
			doc, err := e.gateway.Update(ctx, docID, patch)
			results[index].doc = doc
			results[index].err = err
		}(i, id)
	}
	wg.Wait()

	for i, id := range form.TargetIDs {
		if results[i].err != nil {
			outcome.Failed = append(outcome.Failed, EditFailure{DocumentID: id, Err: results[i].err})
			continue
		}
		outcome.Updated = append(outcome.Updated, *results[i].doc)
	}

	e.logger.Info("batch metadata update settled",
		"targets", len(form.TargetIDs),
		"updated", len(outcome.Updated),
		"failed", len(outcome.Failed),
	)
	return outcome, nil
}

// buildPatch turns the form into a partial document update. In single
// mode every field is included (the form was pre-populated verbatim).
// In batch mode only fields the user actually set are included, so
// untouched fields on the targets stay as they are.
func (f *MetadataForm) buildPatch() *models.DocumentPatch {
	patch := &models.DocumentPatch{}

	include := func(set bool) bool { return !f.BatchMode || set }

	if !f.BatchMode {
		name := f.FileName
		patch.FileName = &name
		isPublic := f.IsPublic
		patch.IsPublic = &isPublic
	}
	if include(f.Category != "") {
		v := f.Category
		patch.Category = &v
	}
	if include(f.Description != (models.LocalizedText{})) {
		v := f.Description
		patch.Description = &v
	}
	if include(len(f.Tags) > 0) {
		v := append([]string{}, f.Tags...)
		patch.Tags = &v
	}
	if include(f.CulturalSignificance != "") {
		v := f.CulturalSignificance
		patch.CulturalSignificance = &v
	}
	if include(f.HistoricalPeriod != "") {
		v := f.HistoricalPeriod
		patch.HistoricalPeriod = &v
	}
	if include(f.GeographicalRegion != "") {
		v := f.GeographicalRegion
		patch.GeographicalRegion = &v
	}
	if include(f.Creator != "") {
		v := f.Creator
		patch.Creator = &v
	}
	if include(f.CreationDate != "") {
		v := f.CreationDate
		patch.CreationDate = &v
	}
	if include(f.AcquisitionDate != "") {
		v := f.AcquisitionDate
		patch.AcquisitionDate = &v
	}
	if include(f.Condition != "") {
		v := f.Condition
		patch.Condition = &v
	}
	if include(len(f.Materials) > 0) {
		v := append([]string{}, f.Materials...)
		patch.Materials = &v
	}
	if include(f.Dimensions != "") {
		v := f.Dimensions
		patch.Dimensions = &v
	}
	if include(f.CopyrightStatus != "") {
		v := f.CopyrightStatus
		patch.CopyrightStatus = &v
	}
	if include(f.AccessRestrictions != "") {
		v := f.AccessRestrictions
		patch.AccessRestrictions = &v
	}
	if include(f.PreservationNotes != "") {
		v := f.PreservationNotes
		patch.PreservationNotes = &v
	}
	if include(f.CatalogNumber != "") {
		v := f.CatalogNumber
		patch.CatalogNumber = &v
	}
	if include(len(f.CustomFields) > 0) {
		v := make(map[string]string, len(f.CustomFields))
		for k, val := range f.CustomFields {
			v[k] = val
		}
		patch.CustomFields = &v
	}
	return patch
}
