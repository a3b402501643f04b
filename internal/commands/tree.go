// Package commands contains the traversal, rendering, and assembly logic of a snapshot.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/snapshot/internal/types"
)

const (
	// warningSkipSubdirFormat is used when a subdirectory cannot be listed.
	warningSkipSubdirFormat = "skipping subdirectory %s due to error: %v"

	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	errorStatRootFormat      = "%w: %s: %v"
	errorRootNotDirectory    = "%w: %s is not a directory"
	errorReadDirectoryFormat = "reading directory %s: %w"
	errorBuildTreeFormat     = "building tree for %s: %w"
)

// ErrInvalidRoot reports a scan root that does not exist or is not a directory.
var ErrInvalidRoot = errors.New("invalid project root")

// ResolveRoot returns the absolute, cleaned form of rootDirectoryPath after checking that it is a directory.
func ResolveRoot(rootDirectoryPath string) (string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)
	rootInfo, rootStatError := os.Stat(cleanedRootPath)
	if rootStatError != nil {
		return "", fmt.Errorf(errorStatRootFormat, ErrInvalidRoot, rootDirectoryPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectory, ErrInvalidRoot, rootDirectoryPath)
	}
	return cleanedRootPath, nil
}

// Build walks rootDirectoryPath depth first. Every directory lists its files, sorted
// byte-wise, before its subdirectories are visited. Ignored directories are pruned
// before they are read.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) (types.TreeResult, error) {
	resolvedRootPath, resolveError := ResolveRoot(rootDirectoryPath)
	if resolveError != nil {
		return types.TreeResult{}, resolveError
	}
	return treeBuilder.BuildResolved(resolvedRootPath)
}

// BuildResolved walks a root already returned by ResolveRoot.
func (treeBuilder *TreeBuilder) BuildResolved(resolvedRootPath string) (types.TreeResult, error) {
	var result types.TreeResult
	if walkError := treeBuilder.walkDirectory(resolvedRootPath, "", &result); walkError != nil {
		return types.TreeResult{}, fmt.Errorf(errorBuildTreeFormat, resolvedRootPath, walkError)
	}
	return result, nil
}

// walkDirectory lists one directory. relativeDirectory is empty for the root.
func (treeBuilder *TreeBuilder) walkDirectory(currentDirectoryPath string, relativeDirectory string, result *types.TreeResult) error {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	var fileNames []string
	var subdirectoryNames []string
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() {
			if !treeBuilder.Rules.IsIgnoredDirectory(entryName) {
				subdirectoryNames = append(subdirectoryNames, entryName)
			}
			continue
		}
		// links to directories are neither followed nor listed
		if directoryEntry.Type()&os.ModeSymlink != 0 && isDirectoryLink(filepath.Join(currentDirectoryPath, entryName)) {
			continue
		}
		fileNames = append(fileNames, entryName)
	}
	sort.Strings(fileNames)
	sort.Strings(subdirectoryNames)

	fileIndent := directoryDepth(relativeDirectory) + 1
	for _, fileName := range fileNames {
		filePath := filepath.Join(currentDirectoryPath, fileName)
		if treeBuilder.Rules.IsIgnoredFile(fileName) || treeBuilder.isExcludedPath(filePath) {
			continue
		}
		relativeFilePath := path.Join(relativeDirectory, fileName)
		result.Files = append(result.Files, types.IncludedFile{
			Path:         filePath,
			RelativePath: relativeFilePath,
		})
		result.Entries = append(result.Entries, types.TreeEntry{
			Name:         fileName,
			RelativePath: relativeFilePath,
			Indent:       fileIndent,
		})
	}

	for _, subdirectoryName := range subdirectoryNames {
		subdirectoryPath := filepath.Join(currentDirectoryPath, subdirectoryName)
		relativeSubdirectory := path.Join(relativeDirectory, subdirectoryName)
		result.Entries = append(result.Entries, types.TreeEntry{
			Name:         subdirectoryName,
			RelativePath: relativeSubdirectory,
			Indent:       directoryDepth(relativeSubdirectory),
			IsDirectory:  true,
		})
		if walkError := treeBuilder.walkDirectory(subdirectoryPath, relativeSubdirectory, result); walkError != nil {
			treeBuilder.warn(fmt.Sprintf(warningSkipSubdirFormat, subdirectoryPath, walkError))
		}
	}
	return nil
}

func isDirectoryLink(linkPath string) bool {
	targetInfo, statError := os.Stat(linkPath)
	return statError == nil && targetInfo.IsDir()
}

// directoryDepth counts the separators in a slash-separated relative directory path.
// The root and its direct children are both at depth zero.
func directoryDepth(relativeDirectory string) int {
	if relativeDirectory == "" {
		return 0
	}
	return strings.Count(relativeDirectory, "/")
}
