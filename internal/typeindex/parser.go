package typeindex

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse decodes a type index document. JSON documents are accepted as well
// since they are valid YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling type index: %w", err)
	}
	for i := range doc.Types {
		if doc.Types[i].Kind == "" {
			doc.Types[i].Kind = KindClass
		}
	}
	return &doc, nil
}

// ParseFile reads and decodes the type index at path without schema
// validation. Use Load for the validated path.
func ParseFile(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Load reads the type index at path, validates it against the schema,
// checks the document version and builds the query index.
func Load(path string) (*Index, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidDocument, path, result.Summary())
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := CheckVersion(doc.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	idx, err := New(doc)
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", path, err)
	}
	return idx, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
