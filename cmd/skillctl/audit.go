package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/audit"
	"github.com/opencode-dev/skillctl/pkg/presenter"
	"github.com/opencode-dev/skillctl/pkg/skills"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the catalog for overlapping and oversized skills",
	Long: `Audit the skill catalog: pairwise duplicity scores between skills,
per-skill token cost estimates, and which agent profiles each skill is
suitable for. With --report, a full markdown report is written instead of
the terminal summary.`,
	Run: func(cmd *cobra.Command, _ []string) {
		threshold, _ := cmd.Flags().GetInt("threshold")
		reportPath, _ := cmd.Flags().GetString("report")
		duplicityOnly, _ := cmd.Flags().GetBool("duplicity")
		tokensOnly, _ := cmd.Flags().GetBool("tokens")
		suitabilityOnly, _ := cmd.Flags().GetBool("suitability")

		allSkills := mustDiscover(cmd)

		if reportPath != "" {
			report, err := audit.Report(allSkills, threshold, time.Now())
			if err != nil {
				presenter.Error(err, "Failed to generate audit report")
				os.Exit(1)
			}
			if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
				presenter.Error(err, "Failed to write audit report")
				os.Exit(1)
			}
			presenter.Success(fmt.Sprintf("Wrote audit report to %s", reportPath))
			return
		}

		if suitabilityOnly {
			printSuitability(allSkills)
			return
		}

		if !tokensOnly {
			presenter.Section("Duplicity")
			pairs := audit.HighDuplicityPairs(audit.DuplicityMatrix(allSkills), threshold)
			if len(pairs) == 0 {
				presenter.Info(fmt.Sprintf("No skill pairs at or above %d", threshold))
			}
			for _, pair := range pairs {
				presenter.Warning(fmt.Sprintf("%s ~ %s: %d", pair.A, pair.B, pair.Score))
			}
		}

		if !duplicityOnly {
			presenter.Section("Token Costs")
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SKILL\tCATEGORY\tTOKENS\tSTATUS")
			for _, cost := range audit.TokenCosts(allSkills) {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", cost.Name, cost.Category, cost.Tokens, cost.Status)
			}
			tw.Flush()
		}
	},
}

// printSuitability renders the skill/agent compatibility matrix as a table
func printSuitability(allSkills map[string]*skills.Skill) {
	presenter.Section("Subagent Suitability")

	matrix := audit.SuitabilityMatrix(allSkills, nil)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "SKILL")
	for _, profile := range audit.DefaultProfiles {
		fmt.Fprintf(tw, "\t%s", profile.Name)
	}
	fmt.Fprintln(tw)

	for _, row := range audit.SuitabilityRows(matrix, nil) {
		fmt.Fprint(tw, row.Skill)
		for _, ok := range row.Compatible {
			if ok {
				fmt.Fprint(tw, "\tyes")
			} else {
				fmt.Fprint(tw, "\tno")
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

func init() {
	auditCmd.Flags().Int("threshold", audit.DefaultThreshold, "Duplicity score at which a pair is flagged")
	auditCmd.Flags().String("report", "", "Write a markdown report to this file instead of printing")
	auditCmd.Flags().Bool("duplicity", false, "Only run the duplicity analysis")
	auditCmd.Flags().Bool("tokens", false, "Only run the token cost analysis")
	auditCmd.Flags().Bool("suitability", false, "Only run the subagent suitability analysis")
	rootCmd.AddCommand(auditCmd)
}
