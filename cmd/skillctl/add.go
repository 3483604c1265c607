package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/presenter"
	"github.com/opencode-dev/skillctl/pkg/skills"
)

var addCmd = &cobra.Command{
	Use:   "add <org/repo[@ref]>",
	Short: "Add skills from a GitHub repository",
	Long: `Add skills from a GitHub repository. The repository should contain
directories with SKILL.md files. You can specify:

  - A repo: orgname/skills (adds all skills)
  - A repo with a specific skill: orgname/skills --dir skills/specific-skill
  - A repo at a ref: orgname/skills@v0.1.0

Examples:
  skillctl add orgname/skills
  skillctl add orgname/skills --dir skills/coverage-badge
  skillctl add orgname/skills@main -g`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		global, _ := cmd.Flags().GetBool("global")
		dir, _ := cmd.Flags().GetString("dir")
		addSkills(args[0], dir, global)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <skill-name>",
	Short: "Remove an installed skill",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		global, _ := cmd.Flags().GetBool("global")
		removeSkill(args[0], global)
	},
}

func init() {
	addCmd.Flags().BoolP("global", "g", false, "Install to the global ~/.skillctl/skills directory instead of ./.skillctl/skills")
	addCmd.Flags().StringP("dir", "d", "", "Path to a specific skill directory within the repository")
	removeCmd.Flags().BoolP("global", "g", false, "Remove from the global ~/.skillctl/skills directory")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
}

func installDir(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "failed to get user home directory")
		}
		return filepath.Join(homeDir, ".skillctl", "skills"), nil
	}
	return ".skillctl/skills", nil
}

func addSkills(repo, dir string, global bool) {
	if !ghInstalled() {
		presenter.Error(errors.New("gh CLI is not installed"), "Please install the GitHub CLI (gh) to use this command")
		os.Exit(1)
	}

	repoName, ref := parseRepoAndRef(repo)

	tmpDir, err := os.MkdirTemp("", "skillctl-add-*")
	if err != nil {
		presenter.Error(err, "Failed to create temporary directory")
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	cloneArgs := []string{"repo", "clone", repoName, tmpDir}
	if ref != "" {
		cloneArgs = append(cloneArgs, "--", "--branch", ref, "--single-branch")
	}

	cmd := exec.Command("gh", cloneArgs...)
	if output, err := cmd.CombinedOutput(); err != nil {
		presenter.Error(errors.Wrapf(err, "output: %s", string(output)), "Failed to clone repository")
		os.Exit(1)
	}

	skillsDir, err := installDir(global)
	if err != nil {
		presenter.Error(err, "Failed to determine skills directory")
		os.Exit(1)
	}

	if err := os.MkdirAll(skillsDir, 0o755); err != nil {
		presenter.Error(err, "Failed to create skills directory")
		os.Exit(1)
	}

	var skillDirs []string
	if dir != "" {
		targetPath := filepath.Join(tmpDir, dir)
		if _, err := os.Stat(filepath.Join(targetPath, skills.SkillFileName)); os.IsNotExist(err) {
			presenter.Error(errors.Errorf("no SKILL.md found at %s", dir), "Invalid skill path")
			os.Exit(1)
		}
		skillDirs = []string{targetPath}
	} else {
		skillDirs, err = findSkillDirs(tmpDir)
		if err != nil {
			presenter.Error(err, "Failed to find skills in repository")
			os.Exit(1)
		}
	}

	if len(skillDirs) == 0 {
		presenter.Warning("No skills found in the repository")
		return
	}

	installed := 0
	for _, skillDir := range skillDirs {
		skillName := filepath.Base(skillDir)
		destDir := filepath.Join(skillsDir, skillName)

		if _, err := os.Stat(destDir); err == nil {
			presenter.Warning(fmt.Sprintf("Skill '%s' already exists, skipping", skillName))
			continue
		}

		if err := copyDir(skillDir, destDir); err != nil {
			presenter.Error(err, fmt.Sprintf("Failed to install skill '%s'", skillName))
			continue
		}

		installed++
		presenter.Success(fmt.Sprintf("Installed skill '%s' to %s", skillName, destDir))
	}

	if installed > 0 {
		presenter.Info(fmt.Sprintf("Successfully installed %d skill(s)", installed))
	}
}

func removeSkill(name string, global bool) {
	skillsDir, err := installDir(global)
	if err != nil {
		presenter.Error(err, "Failed to determine skills directory")
		os.Exit(1)
	}

	skillDir := filepath.Join(skillsDir, name)

	if _, err := os.Stat(filepath.Join(skillDir, skills.SkillFileName)); os.IsNotExist(err) {
		location := "local"
		if global {
			location = "global"
		}
		presenter.Error(errors.Errorf("skill '%s' not found in %s skills directory", name, location), "Skill not found")
		os.Exit(1)
	}

	if err := os.RemoveAll(skillDir); err != nil {
		presenter.Error(err, fmt.Sprintf("Failed to remove skill '%s'", name))
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Removed skill '%s' from %s", name, skillDir))
}

func ghInstalled() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}

func parseRepoAndRef(repo string) (string, string) {
	if idx := strings.LastIndex(repo, "@"); idx != -1 {
		return repo[:idx], repo[idx+1:]
	}
	return repo, ""
}

func findSkillDirs(root string) ([]string, error) {
	var skillDirs []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && (info.Name() == ".git" || info.Name() == "node_modules") {
			return filepath.SkipDir
		}

		if !info.IsDir() && info.Name() == skills.SkillFileName {
			skillDirs = append(skillDirs, filepath.Dir(path))
		}

		return nil
	})

	return skillDirs, err
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
