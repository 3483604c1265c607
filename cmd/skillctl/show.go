package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/presenter"
	"github.com/opencode-dev/skillctl/pkg/skills"
)

var showCmd = &cobra.Command{
	Use:   "show <skill-name>",
	Short: "Show a skill's metadata and document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		allSkills, enabled := skills.Initialize(cmd.Context())
		if !enabled {
			presenter.Info("Skill discovery is disabled")
			return
		}

		skill, exists := allSkills[args[0]]
		if !exists {
			presenter.Error(fmt.Errorf("skill '%s' not found", args[0]), "Unknown skill")
			os.Exit(1)
		}

		metaOnly, _ := cmd.Flags().GetBool("meta")

		fmt.Printf("Name:        %s\n", skill.Name)
		fmt.Printf("Description: %s\n", skill.Description)
		if skill.License != "" {
			fmt.Printf("License:     %s\n", skill.License)
		}
		if skill.Compatibility != "" {
			fmt.Printf("Compat:      %s\n", skill.Compatibility)
		}
		fmt.Printf("Directory:   %s\n", skill.Directory)

		if !metaOnly {
			fmt.Println()
			fmt.Println(skill.Content)
		}
	},
}

func init() {
	showCmd.Flags().Bool("meta", false, "Show frontmatter metadata only, not the document body")
	rootCmd.AddCommand(showCmd)
}
