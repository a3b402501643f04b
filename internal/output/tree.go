package output

import (
	"fmt"
	"path"
	"strings"

	"github.com/disiqueira/gotree/v3"

	"github.com/temirov/snapshot/internal/types"
)

const (
	treeIndentUnit         = "    "
	treeMarker             = "|-- "
	directorySuffix        = "/"
	errorUnknownTreeFormat = "unknown tree style %q"
)

// RenderTree formats tree entries using the requested style.
// The plain style indents every line by four spaces per level and has no trailing newline.
// The box style draws the same entries with box-drawing connectors under a root label.
func RenderTree(entries []types.TreeEntry, style string, rootLabel string) (string, error) {
	switch style {
	case "", types.TreeStylePlain:
		return RenderPlainTree(entries), nil
	case types.TreeStyleBox:
		return RenderBoxTree(entries, rootLabel), nil
	default:
		return "", fmt.Errorf(errorUnknownTreeFormat, style)
	}
}

// RenderPlainTree joins one "|-- " line per entry with newlines.
func RenderPlainTree(entries []types.TreeEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := strings.Repeat(treeIndentUnit, entry.Indent) + treeMarker + entry.Name
		if entry.IsDirectory {
			line += directorySuffix
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderBoxTree builds a gotree from the entries' relative paths.
func RenderBoxTree(entries []types.TreeEntry, rootLabel string) string {
	rootNode := gotree.New(rootLabel + directorySuffix)
	directories := map[string]gotree.Tree{".": rootNode}
	for _, entry := range entries {
		parentNode, known := directories[path.Dir(entry.RelativePath)]
		if !known {
			parentNode = rootNode
		}
		if entry.IsDirectory {
			directories[entry.RelativePath] = parentNode.Add(entry.Name + directorySuffix)
			continue
		}
		parentNode.Add(entry.Name)
	}
	return strings.TrimSuffix(rootNode.Print(), "\n")
}
