package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/opencode-dev/skillctl/pkg/logger"
	"github.com/opencode-dev/skillctl/pkg/presenter"
	"github.com/opencode-dev/skillctl/pkg/skills"
	"github.com/opencode-dev/skillctl/pkg/validate"
)

const watchDebounce = 300 * time.Millisecond

var validateCmd = &cobra.Command{
	Use:   "validate [dir...]",
	Short: "Validate skill documents against the catalog schema",
	Long: `Validate every SKILL.md under the given skill trees (default: ./skills).
Errors fail the command; warnings are reported but do not.`,
	Run: func(cmd *cobra.Command, args []string) {
		roots := args
		if len(roots) == 0 {
			roots = []string{"./skills"}
		}

		watch, _ := cmd.Flags().GetBool("watch")

		if !runValidation(roots) && !watch {
			os.Exit(1)
		}

		if watch {
			watchAndValidate(cmd.Context(), roots)
		}
	},
}

func init() {
	validateCmd.Flags().Bool("watch", false, "Re-validate whenever a skill file changes")
	rootCmd.AddCommand(validateCmd)
}

// runValidation validates each root and reports findings.
// Returns false when any error-severity finding was produced.
func runValidation(roots []string) bool {
	clean := true
	for _, root := range roots {
		result, err := validate.Dir(root)
		if err != nil {
			presenter.Error(err, fmt.Sprintf("Failed to validate %s", root))
			clean = false
			continue
		}

		for _, finding := range result.Findings {
			switch finding.Severity {
			case validate.SeverityError:
				presenter.Error(fmt.Errorf("%s (%s)", finding.Message, finding.Rule), finding.Path)
			case validate.SeverityWarning:
				presenter.Warning(fmt.Sprintf("%s: %s (%s)", finding.Path, finding.Message, finding.Rule))
			}
		}

		if result.HasErrors() {
			clean = false
		} else {
			presenter.Success(fmt.Sprintf("%s: %d skill(s) valid, %d warning(s)", root, result.Checked, len(result.Warnings())))
		}
	}
	return clean
}

// watchAndValidate blocks, re-running validation whenever a SKILL.md under
// one of the roots changes. Events are debounced so editors that write in
// several syscalls trigger one run.
func watchAndValidate(ctx context.Context, roots []string) {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		os.Exit(1)
	}
	defer watcher.Close()

	for _, root := range roots {
		_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() && !strings.HasPrefix(filepath.Base(path), ".") {
				if err := watcher.Add(path); err != nil {
					logger.G(ctx).WithError(err).WithField("dir", path).Debug("Failed to watch directory")
				}
			}
			return nil
		})
	}

	presenter.Info("Watching for changes, Ctrl-C to stop")

	var timer *time.Timer
	runs := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != skills.SkillFileName && event.Op&fsnotify.Create == 0 {
				continue
			}
			// New directories need watching too
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.G(ctx).WithError(err).Warn("File watcher error")
		case <-runs:
			runValidation(roots)
		}
	}
}
