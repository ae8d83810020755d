package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Show tag usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			for _, stat := range ws.Tags.Stats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-10s used %d, last %s\n",
					stat.Name, stat.Category, stat.UsageCount,
					stat.LastUsed.Format("2006-01-02"))
			}
			return nil
		},
	}
}
