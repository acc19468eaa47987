package sim

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SnapshotSchema describes the JSON snapshot spectators receive.
func SnapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Snapshot))
	schema.Title = "slash snapshot"
	schema.Description = "One simulation tick as streamed to spectators"
	return schema
}

// MarshalSnapshotSchema encodes SnapshotSchema as indented JSON.
func MarshalSnapshotSchema() ([]byte, error) {
	data, err := json.MarshalIndent(SnapshotSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sim: marshal schema: %w", err)
	}
	return data, nil
}
