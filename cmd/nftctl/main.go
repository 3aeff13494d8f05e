// Command nftctl is the operator tool for the catalog, prompt previews and
// persisted team references.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"nftforge/internal/catalog"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nftctl",
		Short:         "Operate the sports NFT artwork service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cat := catalog.Default()
	root.AddCommand(newCatalogCmd(cat), newPromptCmd(cat), newTeamRefCmd())
	return root
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nftctl:", err)
		os.Exit(1)
	}
}
