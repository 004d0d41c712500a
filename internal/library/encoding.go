package library

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/verte-zerg/typelingo/internal/model"
)

// WritePairings encodes pairings as indented JSON.
func WritePairings(w io.Writer, pairings model.PairingMap) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pairings); err != nil {
		return fmt.Errorf("failed to encode pairings: %w", err)
	}
	return nil
}

// ReadPairings decodes pairings written by WritePairings.
func ReadPairings(r io.Reader) (model.PairingMap, error) {
	var pairings model.PairingMap
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pairings); err != nil {
		return nil, fmt.Errorf("failed to decode pairings: %w", err)
	}
	return pairings, nil
}
