package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/presenter"
	"github.com/opencode-dev/skillctl/pkg/skills"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered skills",
	Long:  `List all discovered skills with their names, descriptions, and directory paths.`,
	Run: func(cmd *cobra.Command, _ []string) {
		allSkills, enabled := skills.Initialize(cmd.Context())
		if !enabled {
			presenter.Info("Skill discovery is disabled")
			return
		}

		if len(allSkills) == 0 {
			presenter.Info("No skills found")
			return
		}

		names := make([]string, 0, len(allSkills))
		for name := range allSkills {
			names = append(names, name)
		}
		sort.Strings(names)

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t---------\t-----------")

		for _, name := range names {
			skill := allSkills[name]
			fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, truncateDescription(skill.Description, 60))
		}
		tw.Flush()
	},
}

// truncateDescription shortens a description to at most max runes,
// keeping multibyte characters intact
func truncateDescription(description string, max int) string {
	runes := []rune(description)
	if len(runes) <= max {
		return description
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)
}
