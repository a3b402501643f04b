package tokenizer

import (
	"errors"
	"testing"

	"github.com/temirov/snapshot/internal/types"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("boom") }

func TestCountText(t *testing.T) {
	tokens, err := CountText(testCounter{}, "héllo")
	if err != nil {
		t.Fatalf("CountText error: %v", err)
	}
	if tokens != 5 {
		t.Fatalf("expected 5 tokens, got %d", tokens)
	}
	if _, nilErr := CountText(nil, "x"); !errors.Is(nilErr, errNilCounter) {
		t.Fatalf("expected nil counter error, got %v", nilErr)
	}
}

func TestEstimateSnapshot(t *testing.T) {
	blocks := []types.RenderedBlock{
		{RelativePath: "a.go", Body: "package a", Status: types.BlockStatusContent},
		{RelativePath: "big.bin", Body: "# File content ignored because its size exceeds 2 MB.", Status: types.BlockStatusOversized},
		{RelativePath: "b.go", Body: "package bb", Status: types.BlockStatusContent},
		{RelativePath: "gone.txt", Body: "# Could not read file: missing", Status: types.BlockStatusUnreadable},
	}

	estimate, err := EstimateSnapshot(testCounter{}, "document", blocks)
	if err != nil {
		t.Fatalf("EstimateSnapshot error: %v", err)
	}
	if estimate.DocumentTokens != len("document") {
		t.Fatalf("expected %d document tokens, got %d", len("document"), estimate.DocumentTokens)
	}
	if len(estimate.Blocks) != 2 {
		t.Fatalf("expected placeholder blocks to be skipped, got %+v", estimate.Blocks)
	}
	largest, found := estimate.Largest()
	if !found || largest.RelativePath != "b.go" || largest.Tokens != len("package bb") {
		t.Fatalf("unexpected largest block %+v", largest)
	}
}

func TestEstimateSnapshotPropagatesErrors(t *testing.T) {
	if _, err := EstimateSnapshot(failingCounter{}, "document", nil); err == nil {
		t.Fatalf("expected counter error")
	}
	if _, found := (Estimate{}).Largest(); found {
		t.Fatalf("expected no largest block for an empty estimate")
	}
}

func TestIsOpenAIModel(t *testing.T) {
	testCases := []struct {
		model    string
		expected bool
	}{
		{model: "gpt-4o", expected: true},
		{model: "gpt-3.5-turbo", expected: true},
		{model: "text-embedding-3-small", expected: true},
		{model: "claude-3-5-sonnet", expected: false},
		{model: "llama-3", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.model, func(t *testing.T) {
			if actual := isOpenAIModel(testCase.model); actual != testCase.expected {
				t.Fatalf("isOpenAIModel(%q) = %v, expected %v", testCase.model, actual, testCase.expected)
			}
		})
	}
}
