package docsystem

import (
	"context"
	"errors"
	"strings"
	"testing"

	"heritageguard/internal/categories"
	"heritageguard/internal/domain"
	models "heritageguard/internal/domain/models/docsystem"
)

func testEditor(t *testing.T, gateway *fakeDocGateway) *MetadataEditor {
	t.Helper()
	registry, err := categories.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewMetadataEditor(gateway, registry, testLogger())
}

func validForm(ids ...string) *MetadataForm {
	form := InitFromBatch(nil)
	form.BatchMode = len(ids) > 1
	form.TargetIDs = ids
	form.FileName = "charter.pdf"
	form.Category = "HISTORICAL"
	return form
}

func TestValidateCatalogNumber(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"AB-1234", true},
		{"ABCD-123456", true},
		{"", true}, // optional field
		{"A-1234", false},
		{"ABCDE-1234", false},
		{"AB-12", false},
		{"ab-1234", false},
		{"AB-1234567", false},
		{"RH-2024-001", false}, // old example copy, not a valid number
	}

	editor := testEditor(t, &fakeDocGateway{})
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			form := validForm("doc-1")
			form.CatalogNumber = tt.number

			err := editor.Validate(form)
			if tt.valid && err != nil {
				t.Fatalf("Validate(%q) = %v, want nil", tt.number, err)
			}
			if !tt.valid {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("Validate(%q) = %v, want a validation error", tt.number, err)
				}
				if !strings.Contains(err.Error(), "catalog number") {
					t.Errorf("error %q does not name the catalog number", err)
				}
			}
		})
	}
}

func TestValidateDateOrder(t *testing.T) {
	tests := []struct {
		name        string
		creation    string
		acquisition string
		valid       bool
	}{
		{"acquisition after creation", "1950-01-01", "1972-06-15", true},
		{"equal dates pass", "1950-01-01", "1950-01-01", true},
		{"acquisition before creation", "1972-06-15", "1950-01-01", false},
		{"creation only", "1950-01-01", "", true},
		{"acquisition only", "", "1972-06-15", true},
		{"malformed creation date", "01/01/1950", "1972-06-15", false},
	}

	editor := testEditor(t, &fakeDocGateway{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm("doc-1")
			form.CreationDate = tt.creation
			form.AcquisitionDate = tt.acquisition

			err := editor.Validate(form)
			if tt.valid && err != nil {
				t.Fatalf("Validate = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Validate = %v, want a validation error", err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	editor := testEditor(t, &fakeDocGateway{})

	form := validForm("doc-1")
	form.Category = ""
	if err := editor.Validate(form); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing category: Validate = %v, want validation error", err)
	}

	form.Category = "KNITTING"
	if err := editor.Validate(form); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown category: Validate = %v, want validation error", err)
	}

	form.Category = "CONSERVATION"
	if err := editor.Validate(form); err != nil {
		t.Fatalf("known category rejected: %v", err)
	}
}

func TestValidateFileNameRequiredOutsideBatch(t *testing.T) {
	editor := testEditor(t, &fakeDocGateway{})

	single := validForm("doc-1")
	single.FileName = ""
	if err := editor.Validate(single); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("single mode without file name: Validate = %v, want validation error", err)
	}

	batch := validForm("doc-1", "doc-2")
	batch.FileName = ""
	if err := editor.Validate(batch); err != nil {
		t.Fatalf("batch mode requires no file name, got %v", err)
	}
}

func TestInitFromDocumentCopiesVerbatim(t *testing.T) {
	doc := &models.Document{
		ID:            "doc-1",
		FileName:      "deed.pdf",
		Category:      "LEGAL",
		Tags:          []string{"land", "1920s"},
		IsPublic:      true,
		CatalogNumber: "AB-1234",
		CustomFields:  map[string]string{"shelf": "B3"},
	}

	form := InitFromDocument(doc)
	if form.BatchMode {
		t.Fatal("single-document form is in batch mode")
	}
	if len(form.TargetIDs) != 1 || form.TargetIDs[0] != "doc-1" {
		t.Fatalf("targets = %v", form.TargetIDs)
	}
	if form.FileName != "deed.pdf" || form.Category != "LEGAL" || !form.IsPublic {
		t.Fatalf("scalar fields not copied: %+v", form)
	}
	if len(form.Tags) != 2 || form.CustomFields["shelf"] != "B3" {
		t.Fatalf("collections not copied: %+v", form)
	}
	if form.Materials == nil {
		t.Fatal("absent materials should default to an empty list")
	}

	form.Tags[0] = "tampered"
	if doc.Tags[0] != "land" {
		t.Fatal("form shares tag storage with the document")
	}
}

func TestInitFromBatchStartsBlank(t *testing.T) {
	form := InitFromBatch([]models.Document{
		{ID: "1", Category: "LEGAL"},
		{ID: "2", Category: "LEGAL"},
	})

	if !form.BatchMode {
		t.Fatal("batch form not in batch mode")
	}
	if len(form.TargetIDs) != 2 {
		t.Fatalf("targets = %v", form.TargetIDs)
	}
	if form.Category != "" || form.FileName != "" || len(form.Tags) != 0 {
		t.Fatalf("batch form pre-populated shared values: %+v", form)
	}
}

func TestTagListEditing(t *testing.T) {
	form := InitFromBatch(nil)

	form.AddTag("pottery")
	form.AddTag("pottery")   // exact duplicate: no-op
	form.AddTag("  bronze ") // trimmed before comparing
	form.AddTag("bronze")
	form.AddTag("   ") // blank: no-op

	if len(form.Tags) != 2 || form.Tags[0] != "pottery" || form.Tags[1] != "bronze" {
		t.Fatalf("tags = %v, want [pottery bronze]", form.Tags)
	}

	form.RemoveTag("pottery")
	form.RemoveTag("pottery") // already gone: no-op
	if len(form.Tags) != 1 || form.Tags[0] != "bronze" {
		t.Fatalf("tags after removal = %v", form.Tags)
	}

	form.AddMaterial("clay")
	form.AddMaterial("clay")
	if len(form.Materials) != 1 {
		t.Fatalf("materials = %v", form.Materials)
	}
}

func TestSubmitSingleSendsFullPatch(t *testing.T) {
	gateway := &fakeDocGateway{docs: []models.Document{
		{ID: "doc-1", FileName: "old.pdf", Category: "RESEARCH", Condition: "fragile"},
	}}
	editor := testEditor(t, gateway)

	form := validForm("doc-1")
	form.FileName = "renamed.pdf"
	form.Condition = "" // cleared on purpose; single mode overwrites

	outcome, err := editor.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(outcome.Updated) != 1 || len(outcome.Failed) != 0 {
		t.Fatalf("outcome = %+v", outcome)
	}

	updated := outcome.Updated[0]
	if updated.FileName != "renamed.pdf" {
		t.Fatalf("file name = %q, want renamed.pdf", updated.FileName)
	}
	if updated.Condition != "" {
		// Single-mode forms are pre-populated verbatim, so the whole
		// form is the new truth: clearing a field clears it remotely.
		t.Fatalf("condition = %q, want cleared", updated.Condition)
	}
}

func TestSubmitBatchAppliesSetFieldsOnly(t *testing.T) {
	gateway := &fakeDocGateway{docs: []models.Document{
		{ID: "1", FileName: "a.pdf", Category: "RESEARCH", Creator: "Mutesi"},
		{ID: "2", FileName: "b.pdf", Category: "LEGAL", Creator: "Nkusi"},
	}}
	editor := testEditor(t, gateway)

	form := validForm("1", "2")
	form.Category = "CONSERVATION"

	outcome, err := editor.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(outcome.Updated) != 2 {
		t.Fatalf("updated = %d, want 2", len(outcome.Updated))
	}

	for _, doc := range outcome.Updated {
		if doc.Category != "CONSERVATION" {
			t.Errorf("doc %s category = %s", doc.ID, doc.Category)
		}
		if doc.FileName == "" || doc.Creator == "" {
			t.Errorf("doc %s lost untouched fields: %+v", doc.ID, doc)
		}
	}
}

func TestSubmitBatchToleratesPartialFailure(t *testing.T) {
	gateway := &fakeDocGateway{
		docs: []models.Document{
			{ID: "1", FileName: "a.pdf"},
			{ID: "2", FileName: "b.pdf"},
			{ID: "3", FileName: "c.pdf"},
		},
		updateErr: map[string]error{"2": &domain.NotFoundError{Message: "gone"}},
	}
	editor := testEditor(t, gateway)

	outcome, err := editor.Submit(context.Background(), validForm("1", "2", "3"))
	if err != nil {
		t.Fatalf("Submit returned error for a partial failure: %v", err)
	}
	if len(outcome.Updated) != 2 || len(outcome.Failed) != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}
	if outcome.Failed[0].DocumentID != "2" || !errors.Is(outcome.Failed[0].Err, domain.ErrNotFound) {
		t.Fatalf("failure = %+v", outcome.Failed[0])
	}
}

func TestSubmitNoTargetsPanics(t *testing.T) {
	editor := testEditor(t, &fakeDocGateway{})

	defer func() {
		if recover() == nil {
			t.Fatal("Submit with no targets did not panic")
		}
	}()
	_, _ = editor.Submit(context.Background(), &MetadataForm{})
}
