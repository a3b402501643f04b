package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/snapshot/internal/commands"
	"github.com/temirov/snapshot/internal/config"
	"github.com/temirov/snapshot/internal/output"
	"github.com/temirov/snapshot/internal/types"
)

// writeProjectFiles creates every file (with parent directories) under rootDirectory.
func writeProjectFiles(testingHandle *testing.T, rootDirectory string, files map[string]string) {
	testingHandle.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if makeDirError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); makeDirError != nil {
			testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(absolutePath), makeDirError)
		}
		if writeError := os.WriteFile(absolutePath, []byte(content), 0o644); writeError != nil {
			testingHandle.Fatalf("write %s: %v", absolutePath, writeError)
		}
	}
}

func buildTree(testingHandle *testing.T, rootDirectory string, rules config.IgnoreRules) types.TreeResult {
	testingHandle.Helper()
	treeBuilder := &commands.TreeBuilder{Rules: rules}
	result, buildError := treeBuilder.Build(rootDirectory)
	if buildError != nil {
		testingHandle.Fatalf("Build error: %v", buildError)
	}
	return result
}

// TestTreeBuilderLayouts verifies entry order, indentation, and filtering.
func TestTreeBuilderLayouts(testingHandle *testing.T) {
	testCases := []struct {
		name          string
		files         map[string]string
		directories   []string
		expectedTree  string
		expectedFiles []string
	}{
		{
			name: "ignored build directory is never listed",
			files: map[string]string{
				"src/Main.java":    "class A{}",
				"target/out.class": "cafebabe",
			},
			expectedTree:  "|-- src/\n    |-- Main.java",
			expectedFiles: []string{"src/Main.java"},
		},
		{
			name: "root files precede subdirectories",
			files: map[string]string{
				"pom.xml":                    "<project/>",
				"a/x.txt":                    "x",
				"src/main/java/App.java":     "class App{}",
				"src/main/resources/app.yml": "a: b",
				"README.md":                  "# readme",
			},
			expectedTree: strings.Join([]string{
				"    |-- README.md",
				"    |-- pom.xml",
				"|-- a/",
				"    |-- x.txt",
				"|-- src/",
				"    |-- main/",
				"        |-- java/",
				"            |-- App.java",
				"        |-- resources/",
				"            |-- app.yml",
			}, "\n"),
			expectedFiles: []string{"README.md", "pom.xml", "a/x.txt", "src/main/java/App.java", "src/main/resources/app.yml"},
		},
		{
			name: "files are sorted byte-wise",
			files: map[string]string{
				"b.txt":  "b",
				"B.txt":  "B",
				"a.txt":  "a",
				"_z.txt": "z",
			},
			expectedTree:  "    |-- B.txt\n    |-- _z.txt\n    |-- a.txt\n    |-- b.txt",
			expectedFiles: []string{"B.txt", "_z.txt", "a.txt", "b.txt"},
		},
		{
			name: "extension match is case sensitive at any depth",
			files: map[string]string{
				"image.png":            "png",
				"image.PNG":            "PNG",
				"deep/nested/icon.png": "png",
				"deep/nested/keep.txt": "keep",
			},
			expectedTree:  "    |-- image.PNG\n|-- deep/\n    |-- nested/\n        |-- keep.txt",
			expectedFiles: []string{"image.PNG", "deep/nested/keep.txt"},
		},
		{
			name:          "empty directory keeps its heading",
			files:         map[string]string{"notes.md": "n"},
			directories:   []string{"empty"},
			expectedTree:  "    |-- notes.md\n|-- empty/",
			expectedFiles: []string{"notes.md"},
		},
		{
			name: "only ignored content yields nothing",
			files: map[string]string{
				".git/HEAD":         "ref",
				"target/app.jar":    "jar",
				".DS_Store":         "ds",
				"logo.svg":          "<svg/>",
				"__pycache__/m.pyc": "pyc",
			},
			expectedTree:  "",
			expectedFiles: nil,
		},
		{
			name:          "empty root",
			expectedTree:  "",
			expectedFiles: nil,
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(t *testing.T) {
			rootDirectory := t.TempDir()
			writeProjectFiles(t, rootDirectory, testCase.files)
			for _, directoryName := range testCase.directories {
				if makeDirError := os.MkdirAll(filepath.Join(rootDirectory, directoryName), 0o755); makeDirError != nil {
					t.Fatalf("mkdir: %v", makeDirError)
				}
			}

			result := buildTree(t, rootDirectory, config.DefaultRules().Ignore)

			treeText := output.RenderPlainTree(result.Entries)
			if treeText != testCase.expectedTree {
				t.Fatalf("unexpected tree:\n%s\nexpected:\n%s", treeText, testCase.expectedTree)
			}
			relativePaths := result.RelativePaths()
			if strings.Join(relativePaths, ",") != strings.Join(testCase.expectedFiles, ",") {
				t.Fatalf("expected files %v, got %v", testCase.expectedFiles, relativePaths)
			}
			for _, includedFile := range result.Files {
				if !filepath.IsAbs(includedFile.Path) {
					t.Fatalf("expected absolute path, got %s", includedFile.Path)
				}
			}
		})
	}
}

// TestTreeBuilderDoesNotEnterIgnoredDirectories verifies pruning happens before a directory is read.
func TestTreeBuilderDoesNotEnterIgnoredDirectories(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}
	rootDirectory := testingHandle.TempDir()
	writeProjectFiles(testingHandle, rootDirectory, map[string]string{"main.go": "package main", "target/x.txt": "x"})
	lockedDirectory := filepath.Join(rootDirectory, "target")
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	var warnings []string
	treeBuilder := &commands.TreeBuilder{
		Rules: config.DefaultRules().Ignore,
		Warn:  func(message string) { warnings = append(warnings, message) },
	}
	result, buildError := treeBuilder.Build(rootDirectory)
	if buildError != nil {
		testingHandle.Fatalf("Build error: %v", buildError)
	}
	if len(warnings) != 0 {
		testingHandle.Fatalf("expected ignored directory to be skipped silently, got %v", warnings)
	}
	if strings.Join(result.RelativePaths(), ",") != "main.go" {
		testingHandle.Fatalf("unexpected files %v", result.RelativePaths())
	}
}

// TestTreeBuilderSkipsUnreadableSubdirectory verifies enumeration failures are recoverable.
func TestTreeBuilderSkipsUnreadableSubdirectory(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}
	rootDirectory := testingHandle.TempDir()
	writeProjectFiles(testingHandle, rootDirectory, map[string]string{"locked/secret.txt": "s", "open/visible.txt": "v"})
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	var warnings []string
	treeBuilder := &commands.TreeBuilder{
		Rules: config.DefaultRules().Ignore,
		Warn:  func(message string) { warnings = append(warnings, message) },
	}
	result, buildError := treeBuilder.Build(rootDirectory)
	if buildError != nil {
		testingHandle.Fatalf("Build error: %v", buildError)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], lockedDirectory) {
		testingHandle.Fatalf("expected one warning about %s, got %v", lockedDirectory, warnings)
	}
	expectedTree := "|-- locked/\n|-- open/\n    |-- visible.txt"
	if treeText := output.RenderPlainTree(result.Entries); treeText != expectedTree {
		testingHandle.Fatalf("unexpected tree:\n%s", treeText)
	}
}

// TestTreeBuilderDoesNotFollowDirectoryLinks verifies links to directories are skipped.
func TestTreeBuilderDoesNotFollowDirectoryLinks(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFiles(testingHandle, rootDirectory, map[string]string{"real/file.txt": "f"})
	if linkError := os.Symlink(filepath.Join(rootDirectory, "real"), filepath.Join(rootDirectory, "alias")); linkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", linkError)
	}
	if linkError := os.Symlink(filepath.Join(rootDirectory, "real", "file.txt"), filepath.Join(rootDirectory, "shortcut.txt")); linkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", linkError)
	}

	result := buildTree(testingHandle, rootDirectory, config.DefaultRules().Ignore)
	if strings.Join(result.RelativePaths(), ",") != "shortcut.txt,real/file.txt" {
		testingHandle.Fatalf("unexpected files %v", result.RelativePaths())
	}
}

// TestTreeBuilderRejectsInvalidRoot verifies missing and non-directory roots.
func TestTreeBuilderRejectsInvalidRoot(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	filePath := filepath.Join(rootDirectory, "plain.txt")
	writeProjectFiles(testingHandle, rootDirectory, map[string]string{"plain.txt": "x"})

	for _, invalidPath := range []string{filePath, filepath.Join(rootDirectory, "missing")} {
		treeBuilder := &commands.TreeBuilder{Rules: config.DefaultRules().Ignore}
		_, buildError := treeBuilder.Build(invalidPath)
		if !errors.Is(buildError, commands.ErrInvalidRoot) {
			testingHandle.Fatalf("expected ErrInvalidRoot for %s, got %v", invalidPath, buildError)
		}
	}
}

// TestTreeBuilderCustomRules verifies that rule sets are taken from the builder, not globals.
func TestTreeBuilderCustomRules(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeProjectFiles(testingHandle, rootDirectory, map[string]string{
		"target/keep.txt":  "k",
		"vendor/lib.go":    "package lib",
		"cmd/main.go":      "package main",
		"cmd/main_test.go": "package main",
	})
	rules := config.Rules{
		Ignore: config.IgnoreRules{
			Directories:      map[string]struct{}{"vendor": {}},
			Files:            map[string]struct{}{},
			Extensions:       []string{"_test.go"},
			MaxFileSizeBytes: config.DefaultMaxFileSizeBytes,
		},
	}
	result := buildTree(testingHandle, rootDirectory, rules.Ignore)
	if strings.Join(result.RelativePaths(), ",") != "cmd/main.go,target/keep.txt" {
		testingHandle.Fatalf("unexpected files %v", result.RelativePaths())
	}
}
