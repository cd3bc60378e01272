package tokenizer

import (
	"errors"

	"github.com/temirov/codecat/internal/utils"
)

// CountResult captures the outcome of counting a byte slice. Counted is
// false when the data was refused as binary or invalid UTF-8.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for the provided data using counter. Content
// that fails the binary sniff is never fed to the encoder. Empty data counts
// as zero tokens.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("tokenizer counter is required")
	}
	if utils.IsBinary(data) {
		return CountResult{Counted: false}, nil
	}
	tokens, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
