package commands

import (
	"path/filepath"

	"github.com/temirov/snapshot/internal/config"
	"github.com/temirov/snapshot/internal/output"
	"github.com/temirov/snapshot/internal/types"
)

// Snapshotter runs the tree builder and the content renderer over one root and assembles the document.
// Introduction is used as given; callers apply defaults through config.ApplicationConfiguration.Introduction.
type Snapshotter struct {
	Rules         config.Rules
	TreeStyle     string
	Introduction  types.Introduction
	ExcludedPaths []string
	Warn          func(message string)
}

// Snapshot is everything produced by a single run.
type Snapshot struct {
	Root     string
	Tree     types.TreeResult
	TreeText string
	Blocks   []types.RenderedBlock
	Document string
}

// Snapshot scans rootDirectoryPath and returns the assembled document.
// Only an invalid root or an unreadable root directory is reported as an error.
func (snapshotter *Snapshotter) Snapshot(rootDirectoryPath string) (Snapshot, error) {
	resolvedRootPath, resolveError := ResolveRoot(rootDirectoryPath)
	if resolveError != nil {
		return Snapshot{}, resolveError
	}
	return snapshotter.SnapshotResolved(resolvedRootPath)
}

// SnapshotResolved is Snapshot for a root already returned by ResolveRoot.
func (snapshotter *Snapshotter) SnapshotResolved(resolvedRootPath string) (Snapshot, error) {
	treeBuilder := &TreeBuilder{
		Rules:         snapshotter.Rules.Ignore,
		ExcludedPaths: snapshotter.ExcludedPaths,
		Warn:          snapshotter.Warn,
	}
	treeResult, buildError := treeBuilder.BuildResolved(resolvedRootPath)
	if buildError != nil {
		return Snapshot{}, buildError
	}

	treeText, renderTreeError := output.RenderTree(treeResult.Entries, snapshotter.TreeStyle, filepath.Base(resolvedRootPath))
	if renderTreeError != nil {
		return Snapshot{}, renderTreeError
	}

	renderer := &ContentRenderer{Rules: snapshotter.Rules, Warn: snapshotter.Warn}
	blocks := renderer.Render(treeResult.Files)

	return Snapshot{
		Root:     resolvedRootPath,
		Tree:     treeResult,
		TreeText: treeText,
		Blocks:   blocks,
		Document: output.RenderDocument(output.RenderIntroduction(snapshotter.Introduction), treeText, output.FormatBlocks(blocks)),
	}, nil
}
