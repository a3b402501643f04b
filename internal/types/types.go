// Package types defines every cross-package data structure used by the snapshot CLI.
package types

const (
	BlockStatusContent    = "content"
	BlockStatusOversized  = "oversized"
	BlockStatusUnreadable = "unreadable"

	TreeStylePlain = "plain"
	TreeStyleBox   = "box"
)

// TreeEntry is a single line of the project structure listing.
type TreeEntry struct {
	Name         string
	RelativePath string
	Indent       int
	IsDirectory  bool
}

// IncludedFile is a file that passed every exclusion rule.
type IncludedFile struct {
	Path         string
	RelativePath string
}

// TreeResult is the outcome of a single traversal of the project root.
type TreeResult struct {
	Entries []TreeEntry
	Files   []IncludedFile
}

// RelativePaths lists the root-relative paths of the included files in traversal order.
func (result TreeResult) RelativePaths() []string {
	paths := make([]string, 0, len(result.Files))
	for _, includedFile := range result.Files {
		paths = append(paths, includedFile.RelativePath)
	}
	return paths
}

// RenderedBlock is the header and fenced body produced for one included file.
type RenderedBlock struct {
	RelativePath string
	Language     string
	Body         string
	Status       string
}

// Introduction fills the sentence that opens every snapshot document.
type Introduction struct {
	Description string
	Goal        string
}
