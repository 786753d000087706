package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// EnvConfigDir lists assistant config directories, comma separated
const EnvConfigDir = "CLAUDE_CONFIG_DIR"

// EnvMaxOutputTokens overrides the output reservation for effective context
const EnvMaxOutputTokens = "CLAUDE_CODE_MAX_OUTPUT_TOKENS"

const projectsDir = "projects"

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// CandidateConfigDirs returns the assistant config directories to consider:
// the env list when set, otherwise ~/.config/claude and ~/.claude.
func CandidateConfigDirs(env string, home string) []string {
	if strings.TrimSpace(env) != "" {
		dirs := lo.Map(strings.Split(env, ","), func(s string, _ int) string {
			return ExpandPath(strings.TrimSpace(s))
		})
		return lo.Compact(dirs)
	}
	return []string{
		filepath.Join(home, ".config", "claude"),
		filepath.Join(home, ".claude"),
	}
}

// ProjectDirs maps config directories to their existing projects/
// subdirectories, dropping duplicates and anything missing.
func ProjectDirs(configDirs []string) []string {
	dirs := lo.FilterMap(configDirs, func(dir string, _ int) (string, bool) {
		p := filepath.Join(filepath.Clean(dir), projectsDir)
		info, err := os.Stat(p)
		return p, err == nil && info.IsDir()
	})
	return lo.Uniq(dirs)
}

// ResolveBaseDirs returns the project roots to scan. Explicit dirs are
// assistant config directories and bypass the environment.
func ResolveBaseDirs(explicit []string) []string {
	if len(explicit) > 0 {
		return ProjectDirs(lo.Map(explicit, func(d string, _ int) string { return ExpandPath(d) }))
	}
	home, _ := os.UserHomeDir()
	return ProjectDirs(CandidateConfigDirs(os.Getenv(EnvConfigDir), home))
}
