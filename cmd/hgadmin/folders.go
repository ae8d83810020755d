package main

import (
	"fmt"
	"strings"

	models "heritageguard/internal/domain/models/docsystem"

	"github.com/spf13/cobra"
)

func newFoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Browse and manage the site's folder tree",
	}
	cmd.AddCommand(
		newFoldersTreeCmd(),
		newFoldersMkdirCmd(),
		newFoldersMvCmd(),
		newFoldersRmCmd(),
		newFoldersPathCmd(),
	)
	return cmd
}

func newFoldersTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the folder hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			for _, root := range ws.Tree.Roots() {
				printNode(cmd, root, 0)
			}
			return nil
		},
	}
}

func printNode(cmd *cobra.Command, node *models.FolderNode, depth int) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s  (%s)\n", strings.Repeat("  ", depth), node.Name, node.ID)
	for _, child := range node.Children {
		printNode(cmd, child, depth+1)
	}
}

func newFoldersMkdirCmd() *cobra.Command {
	var parentID string

	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			var parent *string
			if parentID != "" {
				parent = &parentID
			}
			folder, err := ws.CreateFolder(cmd.Context(), args[0], parent)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (id %s)\n", folder.Name, folder.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "Parent folder id (default: root)")
	return cmd
}

func newFoldersMvCmd() *cobra.Command {
	var parentID string

	cmd := &cobra.Command{
		Use:   "mv <folder-id>",
		Short: "Move a folder to a new parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			var parent *string
			if parentID != "" {
				parent = &parentID
			}
			if err := ws.MoveFolder(cmd.Context(), args[0], parent); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "New parent folder id (default: root)")
	return cmd
}

func newFoldersRmCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "rm <folder-id>",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := ws.DeleteFolder(cmd.Context(), args[0], recursive); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Also delete descendant folders")
	return cmd
}

func newFoldersPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <folder-id>",
		Short: "Print the root→folder breadcrumb path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			crumbs := ws.Tree.BreadcrumbFor(args[0])
			if len(crumbs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "/")
				return nil
			}
			names := make([]string, 0, len(crumbs))
			for _, crumb := range crumbs {
				names = append(names, crumb.Name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "/"+strings.Join(names, "/"))
			return nil
		},
	}
}
