package skills

import (
	"context"

	"github.com/spf13/viper"

	"github.com/opencode-dev/skillctl/pkg/logger"
)

// Initialize discovers skills based on configuration and CLI flags.
// It reads skills.enabled and skills.allowed from config and respects the
// --no-skills flag (bound to no_skills in viper). Returns the discovered
// skills and whether skill loading is enabled.
func Initialize(ctx context.Context) (map[string]*Skill, bool) {
	noSkillsFlag := viper.GetBool("no_skills")

	// skills.enabled defaults to true when unset
	enabled := true
	if viper.IsSet("skills.enabled") {
		enabled = viper.GetBool("skills.enabled")
	}
	if !enabled || noSkillsFlag {
		return nil, false
	}

	var opts []Option
	if dirs := viper.GetStringSlice("skills.dirs"); len(dirs) > 0 {
		opts = append(opts, WithSkillDirs(dirs...))
	}
	if patterns := viper.GetStringSlice("skills.ignore"); len(patterns) > 0 {
		opts = append(opts, WithIgnorePatterns(patterns...))
	}

	discovery, err := NewDiscovery(opts...)
	if err != nil {
		logger.G(ctx).WithError(err).Debug("Failed to create skill discovery")
		return nil, false
	}

	allSkills, err := discovery.DiscoverSkills()
	if err != nil {
		logger.G(ctx).WithError(err).Debug("Failed to discover skills")
		return nil, false
	}

	if allowed := viper.GetStringSlice("skills.allowed"); len(allowed) > 0 {
		allSkills = FilterByAllowlist(allSkills, allowed)
	}

	return allSkills, true
}
