package output_test

import (
	"testing"

	"github.com/temirov/snapshot/internal/output"
	"github.com/temirov/snapshot/internal/types"
)

func sampleEntries() []types.TreeEntry {
	return []types.TreeEntry{
		{Name: "pom.xml", RelativePath: "pom.xml", Indent: 1},
		{Name: "src", RelativePath: "src", Indent: 0, IsDirectory: true},
		{Name: "main", RelativePath: "src/main", Indent: 1, IsDirectory: true},
		{Name: "App.java", RelativePath: "src/main/App.java", Indent: 2},
		{Name: "README.md", RelativePath: "src/README.md", Indent: 1},
		{Name: "docs", RelativePath: "docs", Indent: 0, IsDirectory: true},
	}
}

func TestRenderTree(testingHandle *testing.T) {
	testCases := []struct {
		name         string
		entries      []types.TreeEntry
		style        string
		expectedText string
		expectError  bool
	}{
		{
			name:         "plain",
			entries:      sampleEntries(),
			style:        types.TreeStylePlain,
			expectedText: "    |-- pom.xml\n|-- src/\n    |-- main/\n        |-- App.java\n    |-- README.md\n|-- docs/",
		},
		{
			name:         "empty style falls back to plain",
			entries:      sampleEntries()[:2],
			style:        "",
			expectedText: "    |-- pom.xml\n|-- src/",
		},
		{
			name:         "plain without entries",
			entries:      nil,
			style:        types.TreeStylePlain,
			expectedText: "",
		},
		{
			name:         "box",
			entries:      sampleEntries(),
			style:        types.TreeStyleBox,
			expectedText: "demo/\n├── pom.xml\n├── src/\n│   ├── main/\n│   │   └── App.java\n│   └── README.md\n└── docs/",
		},
		{
			name:         "box without entries",
			entries:      nil,
			style:        types.TreeStyleBox,
			expectedText: "demo/",
		},
		{
			name:        "unknown style",
			entries:     sampleEntries(),
			style:       "fancy",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(t *testing.T) {
			renderedText, renderError := output.RenderTree(testCase.entries, testCase.style, "demo")
			if testCase.expectError {
				if renderError == nil {
					t.Fatalf("expected an error for style %q", testCase.style)
				}
				return
			}
			if renderError != nil {
				t.Fatalf("RenderTree error: %v", renderError)
			}
			if renderedText != testCase.expectedText {
				t.Fatalf("unexpected tree:\n%s\nexpected:\n%s", renderedText, testCase.expectedText)
			}
		})
	}
}
