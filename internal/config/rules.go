// Package config holds the traversal rule set and loads application configuration.
package config

import (
	"sort"

	"github.com/temirov/snapshot/internal/utils"
)

// DefaultMaxFileSizeBytes is the size ceiling above which file content is replaced by a placeholder.
const DefaultMaxFileSizeBytes int64 = 2 * 1024 * 1024

var (
	// DefaultIgnoredDirectories lists directory names that are never entered.
	DefaultIgnoredDirectories = []string{
		"target",
		utils.GitDirectoryName,
		".idea",
		".vscode",
		"__pycache__",
	}

	// DefaultIgnoredFiles lists exact file names that are never included.
	DefaultIgnoredFiles = []string{
		".DS_Store",
	}

	// DefaultIgnoredExtensions lists case-sensitive name suffixes of files that are never included.
	DefaultIgnoredExtensions = []string{
		".class", ".jar", ".log",
		".ico", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp",
		".woff", ".woff2", ".ttf", ".eot",
		".pdf", ".zip", ".map",
	}

	// DefaultLanguageTags maps file extensions to fenced block language tags.
	DefaultLanguageTags = map[string]string{
		".java":       "java",
		".xml":        "xml",
		".md":         "markdown",
		".json":       "json",
		".properties": "properties",
		".sh":         "shell",
		".bat":        "batch",
		".cmd":        "batch",
		".yml":        "yaml",
		".yaml":       "yaml",
		".py":         "python",
		".go":         "go",
		".sql":        "sql",
		".kt":         "kotlin",
		".gradle":     "groovy",
		".js":         "javascript",
		".ts":         "typescript",
		".html":       "html",
		".css":        "css",
		".toml":       "toml",
	}
)

// IgnoreRules decides which directories and files take part in a snapshot.
// Name matching is exact and extension matching is a case-sensitive suffix test.
type IgnoreRules struct {
	Directories      map[string]struct{}
	Files            map[string]struct{}
	Extensions       []string
	MaxFileSizeBytes int64
}

// Rules bundles the ignore rules with the extension to language tag mapping.
type Rules struct {
	Ignore    IgnoreRules
	Languages map[string]string
}

// DefaultRules returns a fresh copy of the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Ignore: IgnoreRules{
			Directories:      toSet(DefaultIgnoredDirectories),
			Files:            toSet(DefaultIgnoredFiles),
			Extensions:       normalizeExtensions(DefaultIgnoredExtensions),
			MaxFileSizeBytes: DefaultMaxFileSizeBytes,
		},
		Languages: cloneLanguages(DefaultLanguageTags),
	}
}

// IsIgnoredDirectory reports whether a directory with this base name is pruned.
func (rules IgnoreRules) IsIgnoredDirectory(directoryName string) bool {
	_, ignored := rules.Directories[directoryName]
	return ignored
}

// IsIgnoredFile reports whether a file with this base name is excluded.
func (rules IgnoreRules) IsIgnoredFile(fileName string) bool {
	if _, ignored := rules.Files[fileName]; ignored {
		return true
	}
	return utils.HasAnySuffix(fileName, rules.Extensions)
}

// Exceeds reports whether a file of sizeBytes is above the configured ceiling.
func (rules IgnoreRules) Exceeds(sizeBytes int64) bool {
	return sizeBytes > rules.MaxFileSizeBytes
}

// LanguageFor returns the language tag for fileName, or an empty string when the extension is unmapped.
func (rules Rules) LanguageFor(fileName string) string {
	extension := utils.FileExtension(fileName)
	if extension == utils.EmptyString {
		return utils.EmptyString
	}
	return rules.Languages[extension]
}

// WithIgnoredDirectories returns a copy of rules that also prunes the given directory names.
func (rules Rules) WithIgnoredDirectories(directoryNames ...string) Rules {
	result := rules.clone()
	for _, directoryName := range directoryNames {
		if directoryName != "" {
			result.Ignore.Directories[directoryName] = struct{}{}
		}
	}
	return result
}

// WithIgnoredFiles returns a copy of rules that also excludes the given file names.
func (rules Rules) WithIgnoredFiles(fileNames ...string) Rules {
	result := rules.clone()
	for _, fileName := range fileNames {
		if fileName != "" {
			result.Ignore.Files[fileName] = struct{}{}
		}
	}
	return result
}

// WithIgnoredExtensions returns a copy of rules that also excludes the given suffixes.
func (rules Rules) WithIgnoredExtensions(extensions ...string) Rules {
	result := rules.clone()
	result.Ignore.Extensions = normalizeExtensions(append(result.Ignore.Extensions, extensions...))
	return result
}

// WithLanguages returns a copy of rules whose language mapping is extended by languages.
func (rules Rules) WithLanguages(languages map[string]string) Rules {
	result := rules.clone()
	for extension, language := range languages {
		if extension != "" {
			result.Languages[extension] = language
		}
	}
	return result
}

// WithMaxFileSize returns a copy of rules using maxFileSizeBytes as the size ceiling.
func (rules Rules) WithMaxFileSize(maxFileSizeBytes int64) Rules {
	result := rules.clone()
	result.Ignore.MaxFileSizeBytes = maxFileSizeBytes
	return result
}

func (rules Rules) clone() Rules {
	return Rules{
		Ignore: IgnoreRules{
			Directories:      cloneSet(rules.Ignore.Directories),
			Files:            cloneSet(rules.Ignore.Files),
			Extensions:       append([]string{}, rules.Ignore.Extensions...),
			MaxFileSizeBytes: rules.Ignore.MaxFileSizeBytes,
		},
		Languages: cloneLanguages(rules.Languages),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

func cloneSet(set map[string]struct{}) map[string]struct{} {
	cloned := make(map[string]struct{}, len(set))
	for value := range set {
		cloned[value] = struct{}{}
	}
	return cloned
}

func cloneLanguages(languages map[string]string) map[string]string {
	cloned := make(map[string]string, len(languages))
	for extension, language := range languages {
		cloned[extension] = language
	}
	return cloned
}

func normalizeExtensions(extensions []string) []string {
	nonEmpty := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		if extension != "" {
			nonEmpty = append(nonEmpty, extension)
		}
	}
	deduplicated := utils.DeduplicatePatterns(nonEmpty)
	sort.Strings(deduplicated)
	return deduplicated
}
