package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/nanoboard/internal/validation"
	"github.com/arthur-debert/nanoboard/types"
)

// CurrentVersion is the envelope version written by Encode.
const CurrentVersion = 1

// Envelope is the persisted slot layout: {"state":{"boards":[...]},"version":N}.
type Envelope struct {
	State   types.State `json:"state"`
	Version int         `json:"version"`
}

// Encode serializes the tree into the slot layout.
// HTML escaping is disabled so URLs are stored verbatim.
func Encode(state *types.State) ([]byte, error) {
	if state == nil {
		state = &types.State{Boards: []*types.Board{}}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Envelope{State: *state, Version: CurrentVersion}); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses slot content into a tree. The raw document is checked
// against the slot schema, migrated to CurrentVersion and then checked for
// referential invariants. Blank content is reported as ErrEmptySlot.
func Decode(data []byte) (*types.State, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySlot
	}

	if err := validateDocument(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSlot, err)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %w", ErrCorruptSlot, err)
	}
	if env.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: version %d is newer than supported version %d", ErrCorruptSlot, env.Version, CurrentVersion)
	}

	migrate(&env)

	if err := validation.ValidateState(&env.State); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSlot, err)
	}
	return &env.State, nil
}
