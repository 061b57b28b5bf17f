package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyRunResult is returned when the input holds no JSON document.
var ErrEmptyRunResult = errors.New("no run result in input")

// DecodeRunResult reads one JSON-encoded RunResult from r.
func DecodeRunResult(r io.Reader) (*RunResult, error) {
	var run RunResult
	if err := json.NewDecoder(r).Decode(&run); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRunResult
		}
		return nil, fmt.Errorf("failed to decode run result: %w", err)
	}
	return &run, nil
}
