package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/presenter"
	"github.com/opencode-dev/skillctl/pkg/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <skill-name>",
	Short: "Scaffold a new skill directory",
	Long: `Scaffold a new skill under the skill tree (default: ./skills) with the
canonical SKILL.md skeleton.

Examples:
  skillctl new terraform-plan-review
  skillctl new rust-clippy-linter --description "Run clippy and fix the findings"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, _ := cmd.Flags().GetString("dir")
		description, _ := cmd.Flags().GetString("description")

		path, err := scaffold.Create(root, args[0], description)
		if err != nil {
			presenter.Error(err, "Failed to scaffold skill")
			os.Exit(1)
		}

		presenter.Success(fmt.Sprintf("Created %s", path))
		presenter.Info("Fill in the TODO sections, then run 'skillctl validate'")
	},
}

func init() {
	newCmd.Flags().StringP("dir", "d", "./skills", "Skill tree to create the skill in")
	newCmd.Flags().String("description", "", "One-line description for the frontmatter")
	rootCmd.AddCommand(newCmd)
}
