package commands

import (
	"path/filepath"

	"github.com/temirov/snapshot/internal/config"
)

// TreeBuilder walks a project root and lists the directories and files that survive the ignore rules.
// ExcludedPaths holds absolute file paths skipped on top of the rules, such as the document being written.
type TreeBuilder struct {
	Rules         config.IgnoreRules
	ExcludedPaths []string
	Warn          func(message string)
}

// ContentRenderer reads included files and turns each one into a fenced block.
type ContentRenderer struct {
	Rules config.Rules
	Warn  func(message string)
}

func (treeBuilder *TreeBuilder) warn(message string) {
	if treeBuilder.Warn != nil {
		treeBuilder.Warn(message)
	}
}

func (treeBuilder *TreeBuilder) isExcludedPath(filePath string) bool {
	for _, excludedPath := range treeBuilder.ExcludedPaths {
		if filepath.Clean(excludedPath) == filePath {
			return true
		}
	}
	return false
}

func (renderer *ContentRenderer) warn(message string) {
	if renderer.Warn != nil {
		renderer.Warn(message)
	}
}
