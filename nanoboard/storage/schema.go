package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var slotSchemaJSON string

var (
	slotSchemaOnce sync.Once
	slotSchema     *jsonschema.Schema
	slotSchemaErr  error
)

func compiledSlotSchema() (*jsonschema.Schema, error) {
	slotSchemaOnce.Do(func() {
		slotSchema, slotSchemaErr = jsonschema.CompileString("board-storage.schema.json", slotSchemaJSON)
	})
	return slotSchema, slotSchemaErr
}

// validateDocument checks raw slot content against the slot schema.
func validateDocument(data []byte) error {
	schema, err := compiledSlotSchema()
	if err != nil {
		return fmt.Errorf("failed to compile slot schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return schema.Validate(doc)
}
