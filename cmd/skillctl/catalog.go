package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/catalog"
	"github.com/opencode-dev/skillctl/pkg/presenter"
	"github.com/opencode-dev/skillctl/pkg/skills"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the generated CATALOG.md index",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var catalogGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate CATALOG.md from the skills on disk",
	Run: func(cmd *cobra.Command, _ []string) {
		output, _ := cmd.Flags().GetString("output")

		allSkills := mustDiscover(cmd)
		if err := catalog.Write(output, allSkills); err != nil {
			presenter.Error(err, "Failed to write catalog")
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("Wrote %s with %d skill(s)", output, len(allSkills)))
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that CATALOG.md matches the skills on disk",
	Run: func(cmd *cobra.Command, _ []string) {
		output, _ := cmd.Flags().GetString("output")

		allSkills := mustDiscover(cmd)
		fresh, err := catalog.Check(output, allSkills)
		if err != nil {
			presenter.Error(err, "Failed to check catalog")
			os.Exit(1)
		}
		if !fresh {
			presenter.Error(fmt.Errorf("%s is stale", output), "Run 'skillctl catalog generate'")
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("%s is up to date", output))
	},
}

func init() {
	catalogCmd.PersistentFlags().StringP("output", "o", catalog.DefaultFileName, "Catalog file path")
	catalogCmd.AddCommand(catalogGenerateCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
	rootCmd.AddCommand(catalogCmd)
}

// mustDiscover loads the skill catalog or exits
func mustDiscover(cmd *cobra.Command) map[string]*skills.Skill {
	allSkills, enabled := skills.Initialize(cmd.Context())
	if !enabled {
		presenter.Error(fmt.Errorf("skill discovery is disabled"), "Nothing to do")
		os.Exit(1)
	}
	if len(allSkills) == 0 {
		presenter.Error(fmt.Errorf("no skills found"), "Nothing to do")
		os.Exit(1)
	}
	return allSkills
}
