package legchunk

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// tiktokenEncoding is the encoding used to count tokens; it matches the
// embedding model family this pipeline targets, not necessarily an LLM
// this repo calls directly.
const tiktokenEncoding = "cl100k_base"

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
)

func encoding() (*tiktoken.Tiktoken, error) {
	encOnce.Do(func() {
		enc, encErr = tiktoken.GetEncoding(tiktokenEncoding)
	})
	return enc, encErr
}

// CountTokens returns the number of cl100k_base tokens in text. If the
// encoding cannot be loaded it falls back to a conservative
// characters-divided-by-four estimate rather than panicking, since token
// counting feeds chunk-size decisions, not correctness-critical output.
func CountTokens(text string) int {
	e, err := encoding()
	if err != nil {
		return (len(text) + 3) / 4
	}
	return len(e.Encode(text, nil, nil))
}
