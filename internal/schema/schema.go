// Package schema publishes JSON Schemas for the persisted console records
// and the config file.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"conch/internal/config"
	"conch/internal/entry"
	"conch/internal/history"
)

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}

func reflect(v any, title, desc string) *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	sch := r.Reflect(v)
	sch.Title = title
	sch.Description = desc
	return sch
}

var schemas = map[string]func() *jsonschema.Schema{
	"lines": func() *jsonschema.Schema {
		return reflect(&entry.Snapshot{}, "conch scrollback record", "Persisted scrollback entries in a state/version envelope.")
	},
	"stacks": func() *jsonschema.Schema {
		return reflect(&history.Snapshot{}, "conch history record", "Persisted input history in a state/version envelope.")
	},
	"config": func() *jsonschema.Schema {
		return reflect(&config.Config{}, "conch config", "Settings read from config.yaml and CONCH_ environment variables.")
	},
}

// Names lists the available schemas.
func Names() []string {
	out := make([]string, 0, len(schemas))
	for k := range schemas {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// For returns the named schema.
func For(name string) (*jsonschema.Schema, error) {
	fn, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q (want one of %v)", name, Names())
	}
	return fn(), nil
}
