// Package output formats snapshot parts into the final text document.
package output

import (
	"fmt"
	"strings"

	"github.com/temirov/snapshot/internal/types"
)

const (
	introductionFormat = "This is the structure and content of %s. My goal is to %s. " +
		"Please analyze the code for inconsistencies, suggest improvements, and complete any missing parts."
	projectStructureHeading = "## Project Structure"
	fileContentsHeading     = "## File Contents"
	treeFenceLanguage       = "text"
	codeFence               = "```"
	pathHeaderFormat        = "--- PATH: %s ---\n"
)

// RenderIntroduction fills the sentence opening the document.
func RenderIntroduction(introduction types.Introduction) string {
	return fmt.Sprintf(introductionFormat, introduction.Description, strings.TrimSuffix(introduction.Goal, "."))
}

// FormatBlock renders a path header followed by a fenced block.
// The header and the fence are separated by one blank line.
func FormatBlock(block types.RenderedBlock) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(pathHeaderFormat, block.RelativePath))
	builder.WriteString("\n")
	builder.WriteString(codeFence + block.Language + "\n")
	builder.WriteString(block.Body + "\n")
	builder.WriteString(codeFence + "\n")
	return builder.String()
}

// FormatBlocks joins every formatted block with a blank line between them.
func FormatBlocks(blocks []types.RenderedBlock) string {
	formattedBlocks := make([]string, 0, len(blocks))
	for _, block := range blocks {
		formattedBlocks = append(formattedBlocks, FormatBlock(block))
	}
	return strings.Join(formattedBlocks, "\n")
}

// RenderDocument concatenates the introduction, the tree, and the file contents.
func RenderDocument(introduction string, tree string, contents string) string {
	var builder strings.Builder
	builder.WriteString(introduction + "\n\n")
	builder.WriteString(projectStructureHeading + "\n\n")
	builder.WriteString(codeFence + treeFenceLanguage + "\n")
	builder.WriteString(tree + "\n")
	builder.WriteString(codeFence + "\n\n")
	builder.WriteString(fileContentsHeading + "\n\n")
	builder.WriteString(contents)
	return builder.String()
}
