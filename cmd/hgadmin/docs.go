package main

import (
	"fmt"

	models "heritageguard/internal/domain/models/docsystem"
	svc "heritageguard/internal/service/docsystem"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List, delete and edit site documents",
	}
	cmd.AddCommand(newDocsListCmd(), newDocsRmCmd(), newDocsEditCmd())
	return cmd
}

func newDocsListCmd() *cobra.Command {
	var (
		query    string
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the site's documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			docs := ws.Catalog.Filter(query, category)
			for _, doc := range docs {
				folder := "-"
				if doc.FolderID != nil {
					folder = *doc.FolderID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-14s %-10s %-8s %s\n",
					doc.ID, doc.Category, humanize.IBytes(uint64(doc.FileSize)), folder, doc.FileName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d documents\n", len(docs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Substring match over file name or description")
	cmd.Flags().StringVarP(&category, "category", "c", svc.CategoryAll, "Exact category filter")
	return cmd
}

func newDocsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <document-id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := ws.DeleteDocument(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newDocsEditCmd() *cobra.Command {
	var (
		category      string
		catalogNumber string
		addTags       []string
		creationDate  string
		acquiredDate  string
	)

	cmd := &cobra.Command{
		Use:   "edit <document-id>...",
		Short: "Edit metadata for one document or a batch",
		Long: `With one id the form is pre-populated from the document and edited fields
replace their previous values. With several ids the edit runs in batch mode:
only the fields given here are written, identically, to every target.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := openWorkspace(ctx)
			if err != nil {
				return err
			}

			var form *svc.MetadataForm
			if len(args) == 1 {
				doc := ws.Catalog.Get(args[0])
				if doc == nil {
					return fmt.Errorf("document %s is not in this site's catalog", args[0])
				}
				form = svc.InitFromDocument(doc)
			} else {
				targets := args
				docs := ws.Catalog.Documents()
				members := make([]models.Document, 0, len(targets))
				for _, doc := range docs {
					for _, id := range targets {
						if doc.ID == id {
							members = append(members, doc)
						}
					}
				}
				if len(members) != len(targets) {
					return fmt.Errorf("some target documents are not in this site's catalog")
				}
				form = svc.InitFromBatch(members)
			}

			if category != "" {
				form.Category = category
			}
			if catalogNumber != "" {
				form.CatalogNumber = catalogNumber
			}
			if creationDate != "" {
				form.CreationDate = creationDate
			}
			if acquiredDate != "" {
				form.AcquisitionDate = acquiredDate
			}
			for _, tag := range addTags {
				form.AddTag(tag)
			}

			outcome, err := ws.SubmitMetadata(ctx, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d document(s)\n", len(outcome.Updated))
			for _, failure := range outcome.Failed {
				fmt.Fprintf(cmd.OutOrStdout(), "failed %s: %v\n", failure.DocumentID, failure.Err)
			}
			if len(outcome.Failed) > 0 {
				return fmt.Errorf("%d update(s) failed", len(outcome.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVar(&catalogNumber, "catalog-number", "", "Catalog number (e.g. AB-1234)")
	cmd.Flags().StringArrayVar(&addTags, "tag", nil, "Tag to add (repeatable)")
	cmd.Flags().StringVar(&creationDate, "creation-date", "", "Creation date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&acquiredDate, "acquisition-date", "", "Acquisition date (YYYY-MM-DD)")
	return cmd
}
