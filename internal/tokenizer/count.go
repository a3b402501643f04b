package tokenizer

import (
	"errors"

	"github.com/temirov/snapshot/internal/types"
)

var errNilCounter = errors.New("nil tokenizer counter")

// BlockTokens is the estimate for the body of one rendered block.
type BlockTokens struct {
	RelativePath string
	Tokens       int
}

// Estimate summarizes the token counts of a snapshot.
type Estimate struct {
	DocumentTokens int
	Blocks         []BlockTokens
}

// CountText estimates tokens for text using counter.
func CountText(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	return counter.CountString(text)
}

// EstimateSnapshot counts the whole document and the body of every block that carries file content.
// Placeholder blocks are left out of the per-file breakdown.
func EstimateSnapshot(counter Counter, document string, blocks []types.RenderedBlock) (Estimate, error) {
	documentTokens, countError := CountText(counter, document)
	if countError != nil {
		return Estimate{}, countError
	}
	estimate := Estimate{DocumentTokens: documentTokens}
	for _, block := range blocks {
		if block.Status != types.BlockStatusContent {
			continue
		}
		blockTokens, blockCountError := counter.CountString(block.Body)
		if blockCountError != nil {
			return Estimate{}, blockCountError
		}
		estimate.Blocks = append(estimate.Blocks, BlockTokens{RelativePath: block.RelativePath, Tokens: blockTokens})
	}
	return estimate, nil
}

// Largest returns the block with the highest token count; the boolean is false when there are no blocks.
func (estimate Estimate) Largest() (BlockTokens, bool) {
	if len(estimate.Blocks) == 0 {
		return BlockTokens{}, false
	}
	largest := estimate.Blocks[0]
	for _, blockTokens := range estimate.Blocks[1:] {
		if blockTokens.Tokens > largest.Tokens {
			largest = blockTokens
		}
	}
	return largest, true
}
