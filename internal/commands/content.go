package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/snapshot/internal/types"
	"github.com/temirov/snapshot/internal/utils"
)

const (
	// OversizedPlaceholderFormat is the block body used for files above the size ceiling.
	OversizedPlaceholderFormat = "# File content ignored because its size exceeds %s MB."
	// UnreadablePlaceholderFormat is the block body used for files that could not be read.
	UnreadablePlaceholderFormat = "# Could not read file: %v"

	warningStatFileFormat = "unable to stat %s: %v"
	warningReadFileFormat = "failed to read file %s: %v"
	warningCloseFormat    = "failed to close %s: %v"
)

// Render produces one block per included file, in the order given.
// A failure on one file becomes a placeholder block and never stops the remaining files.
func (renderer *ContentRenderer) Render(files []types.IncludedFile) []types.RenderedBlock {
	blocks := make([]types.RenderedBlock, 0, len(files))
	for _, includedFile := range files {
		blocks = append(blocks, renderer.renderFile(includedFile))
	}
	return blocks
}

func (renderer *ContentRenderer) renderFile(includedFile types.IncludedFile) types.RenderedBlock {
	relativePath := filepath.ToSlash(includedFile.RelativePath)

	fileInfo, statError := os.Stat(includedFile.Path)
	if statError != nil {
		renderer.warn(fmt.Sprintf(warningStatFileFormat, includedFile.Path, statError))
		return unreadableBlock(relativePath, statError)
	}

	if renderer.Rules.Ignore.Exceeds(fileInfo.Size()) {
		return types.RenderedBlock{
			RelativePath: relativePath,
			Body:         fmt.Sprintf(OversizedPlaceholderFormat, utils.FormatMebibytes(renderer.Rules.Ignore.MaxFileSizeBytes)),
			Status:       types.BlockStatusOversized,
		}
	}

	fileText, readError := renderer.readFileText(includedFile.Path)
	if readError != nil {
		renderer.warn(fmt.Sprintf(warningReadFileFormat, includedFile.Path, readError))
		return unreadableBlock(relativePath, readError)
	}

	return types.RenderedBlock{
		RelativePath: relativePath,
		Language:     renderer.Rules.LanguageFor(filepath.Base(includedFile.Path)),
		Body:         strings.TrimSpace(fileText),
		Status:       types.BlockStatusContent,
	}
}

// readFileText reads the whole file with permissive UTF-8 decoding and always closes it.
//
// #nosec G304
func (renderer *ContentRenderer) readFileText(filePath string) (string, error) {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return "", openError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil {
			renderer.warn(fmt.Sprintf(warningCloseFormat, filePath, closeError))
		}
	}()
	return utils.ReadPermissiveText(fileHandle)
}

func unreadableBlock(relativePath string, cause error) types.RenderedBlock {
	return types.RenderedBlock{
		RelativePath: relativePath,
		Body:         fmt.Sprintf(UnreadablePlaceholderFormat, cause),
		Status:       types.BlockStatusUnreadable,
	}
}
