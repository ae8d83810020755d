// hgadmin is the administrative CLI for the HeritageGuard document
// toolkit: it drives the same workspace components the dashboard uses,
// against the platform's REST API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"heritageguard/internal/auth"
	"heritageguard/internal/categories"
	"heritageguard/internal/config"
	"heritageguard/internal/remote/rest"
	"heritageguard/internal/workspace"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var siteFlag string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "hgadmin: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hgadmin",
		Short: "HeritageGuard document administration CLI",
		Long: `hgadmin manages a heritage site's documents through the HeritageGuard REST API:
uploading document batches, browsing the folder tree, filtering the catalog,
previewing documents and editing metadata singly or in batch.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&siteFlag, "site", "s", "", "Heritage site id (defaults to HERITAGE_SITE_ID)")
	cmd.AddCommand(
		newUploadCmd(),
		newDocsCmd(),
		newFoldersCmd(),
		newPreviewCmd(),
		newTagsCmd(),
	)
	return cmd
}

// openWorkspace builds the workspace from environment configuration
// and loads the selected site.
func openWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	// .env is optional; absence is the normal production case.
	_ = godotenv.Load()
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	session, err := auth.NewSession(cfg.AccessToken)
	if err != nil {
		return nil, err
	}

	registry, err := categories.NewRegistry()
	if err != nil {
		return nil, err
	}

	client := rest.NewClient(rest.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Tokens:  session,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})

	ws := workspace.New(workspace.Config{
		Session:    session,
		Documents:  rest.NewDocumentGateway(client),
		Folders:    rest.NewFolderGateway(client),
		Previews:   rest.NewPreviewGateway(client),
		TagStats:   rest.NewTagGateway(client),
		Categories: registry,
		Logger:     logger,
	})

	siteID := siteFlag
	if siteID == "" {
		siteID = cfg.DefaultSite
	}
	if siteID == "" {
		return nil, fmt.Errorf("no site selected: pass --site or set HERITAGE_SITE_ID")
	}
	if err := ws.Open(ctx, siteID); err != nil {
		return nil, err
	}
	return ws, nil
}
