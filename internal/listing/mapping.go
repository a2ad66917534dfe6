package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MappingEntry maps a verbose (long) column header to a short canonical key.
type MappingEntry struct {
	Key       string // Entry key in the mapping file
	LongName  string // Sanitized long header name; empty if absent
	ShortName string // Short name; empty means the entry is never applied
	Drop      bool   // Drop the column once renamed
}

// Mapping is an ordered list of entries, in mapping file order.
type Mapping []MappingEntry

// ErrEmptyMapping is returned for a mapping file with no content.
var ErrEmptyMapping = errors.New("mapping file is empty")

// LoadMapping reads a column mapping from a JSON or YAML file.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseMappingYAML(data)
	default:
		return ParseMappingJSON(data)
	}
}

// ParseMappingJSON parses a JSON object of mapping entries, preserving key order.
// Entries that are not objects are skipped.
func ParseMappingJSON(data []byte) (Mapping, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyMapping
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing mapping JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing mapping JSON: top level must be an object")
	}

	var m Mapping
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing mapping JSON: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing mapping JSON entry %q: %w", key, err)
		}

		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue // Not an object; nothing to apply
		}
		m = append(m, entryFromFields(key, fields))
	}

	return m, nil
}

// ParseMappingYAML parses a YAML mapping of entries, preserving key order.
// Entries that are not mappings are skipped.
func ParseMappingYAML(data []byte) (Mapping, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing mapping YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrEmptyMapping
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing mapping YAML: top level must be a mapping")
	}

	var m Mapping
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		value := doc.Content[i+1]
		if value.Kind != yaml.MappingNode {
			continue
		}

		var fields map[string]any
		if err := value.Decode(&fields); err != nil {
			continue
		}
		m = append(m, entryFromFields(key, fields))
	}

	return m, nil
}

// entryFromFields extracts an entry permissively: wrongly typed values are
// treated as absent.
func entryFromFields(key string, fields map[string]any) MappingEntry {
	e := MappingEntry{Key: key}
	if s, ok := fields["long_name"].(string); ok {
		e.LongName = s
	}
	if s, ok := fields["short_name"].(string); ok {
		e.ShortName = s
	}
	e.Drop = truthy(fields["drop"])
	return e
}

// truthy follows the loose truthiness mapping files were written against:
// false, zero, empty strings and empty collections are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// Apply renames long-named columns to their short names, then drops columns
// whose short name is flagged for removal. Entries without a short name are
// ignored.
func (m Mapping) Apply(t *Table) (renamed, dropped int) {
	for _, e := range m {
		if e.ShortName == "" || e.LongName == "" {
			continue
		}
		if t.RenameColumn(e.LongName, e.ShortName) {
			renamed++
		}
	}

	for _, e := range m {
		if e.ShortName == "" || !e.Drop {
			continue
		}
		if t.DropColumn(e.ShortName) {
			dropped++
		}
	}

	return renamed, dropped
}
