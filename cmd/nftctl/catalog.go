package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nftforge/internal/catalog"
)

func newCatalogCmd(cat *catalog.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List what the built-in catalog can render",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "teams",
			Short: "Jersey team ids",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, id := range cat.JerseyTeams() {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "badge-styles",
			Short: "Badge styles and their base descriptions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, id := range cat.BadgeStyles() {
					def, _ := cat.BadgeStyle(id)
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", id, def.BaseDescription)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "badge-teams",
			Short: "Teams with a badge identity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, name := range cat.BadgeTeams() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
	)
	return cmd
}
