package task

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var collectionSchemaJSON string

var collectionSchema = jsonschema.MustCompileString("tasks.schema.json", collectionSchemaJSON)

// checkShape reports whether data is a JSON array of task objects. Field
// values are not re-validated here; rules apply at write time only.
func checkShape(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if err := collectionSchema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("schema: %s", strings.Join(schemaMessages(ve), "; "))
		}
		return err
	}
	return nil
}

func schemaMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + ve.Message}
	}
	var msgs []string
	for _, c := range ve.Causes {
		msgs = append(msgs, schemaMessages(c)...)
	}
	return msgs
}
