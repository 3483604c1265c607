package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/builtin"
	"github.com/opencode-dev/skillctl/pkg/presenter"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the builtin skill bundle into ./skills",
	Long: `Install the builtin skill bundle (docstrings, coverage badge, issue
workflows, linting, catalog maintenance) into the repository's skill tree.
Existing skills are left alone unless --force is given.`,
	Run: func(cmd *cobra.Command, _ []string) {
		force, _ := cmd.Flags().GetBool("force")

		installed, err := builtin.Install(".", force)
		if err != nil {
			presenter.Error(err, "Failed to install builtin skills")
			os.Exit(1)
		}

		if installed == 0 {
			presenter.Info("All builtin skills already installed")
			return
		}
		presenter.Success(fmt.Sprintf("Installed %d builtin skill(s) into ./skills", installed))
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing skill documents")
	rootCmd.AddCommand(initCmd)
}
