package main

import (
	"fmt"

	models "heritageguard/internal/domain/models/docsystem"
	svc "heritageguard/internal/service/docsystem"

	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <document-id>",
		Short: "Classify a document and fetch its preview payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := openWorkspace(ctx)
			if err != nil {
				return err
			}

			doc := ws.Catalog.Get(args[0])
			if doc == nil {
				return fmt.Errorf("document %s is not in this site's catalog", args[0])
			}

			kind := svc.ClassifyDocument(doc)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", doc.FileName, kind)

			if err := ws.OpenPreview(ctx, doc); err != nil {
				return err
			}
			_, payload, _ := ws.Preview.State()
			switch kind {
			case models.PreviewPDF, models.PreviewOffice:
				fmt.Fprintf(cmd.OutOrStdout(), "pages: %d\n", payload.TotalPages)
			case models.PreviewText:
				fmt.Fprintln(cmd.OutOrStdout(), payload.Content)
			case models.PreviewAudio, models.PreviewVideo:
				fmt.Fprintf(cmd.OutOrStdout(), "duration: %.1fs\n", payload.DurationSeconds)
			case models.PreviewImage:
				fmt.Fprintf(cmd.OutOrStdout(), "content: %s\n", payload.ContentURL)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "no preview available for this file type")
			}
			return nil
		},
	}
}
