package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/aotreflect/internal/typeindex"
)

// Output file names written by ConfigWriter.
const (
	ReflectConfigFile  = "reflect-config.json"
	ResourceConfigFile = "resource-config.json"
	ResourcesDir       = "resources"
)

// ConfigWriter is a Sink that writes native-image configuration files.
type ConfigWriter struct {
	*Recorder
}

// NewConfigWriter returns an empty ConfigWriter.
func NewConfigWriter() *ConfigWriter {
	return &ConfigWriter{Recorder: NewRecorder()}
}

// ReflectEntry is one element of reflect-config.json.
type ReflectEntry struct {
	Name    string        `json:"name"`
	Fields  []FieldEntry  `json:"fields,omitempty"`
	Methods []MethodEntry `json:"methods,omitempty"`
}

// FieldEntry names a reflectively accessible field.
type FieldEntry struct {
	Name string `json:"name"`
}

// MethodEntry names a reflectively invocable method or constructor.
type MethodEntry struct {
	Name           string   `json:"name"`
	ParameterTypes []string `json:"parameterTypes"`
}

type resourceConfig struct {
	Resources struct {
		Includes []resourcePattern `json:"includes"`
	} `json:"resources"`
}

type resourcePattern struct {
	Pattern string `json:"pattern"`
}

// ReflectConfig returns the reflect-config.json entries sorted by type.
// Constructors are listed as "<init>" methods.
func (w *ConfigWriter) ReflectConfig() []ReflectEntry {
	entries := make([]ReflectEntry, 0, len(w.types))
	for _, name := range w.Types() {
		e := w.types[name]
		re := ReflectEntry{Name: name}
		for _, f := range sortedKeys(e.fields) {
			re.Fields = append(re.Fields, FieldEntry{Name: f})
		}
		for _, sig := range sortedKeys(e.constructors) {
			re.Methods = append(re.Methods, newMethodEntry("<init>", e.constructors[sig].Params))
		}
		for _, sig := range sortedKeys(e.methods) {
			m := e.methods[sig]
			re.Methods = append(re.Methods, newMethodEntry(m.Name, m.Params))
		}
		entries = append(entries, re)
	}
	return entries
}

// newMethodEntry erases each parameter to its runtime name.
func newMethodEntry(name string, params []string) MethodEntry {
	erased := make([]string, len(params))
	for i, p := range params {
		erased[i] = typeindex.RuntimeName(p)
	}
	return MethodEntry{Name: name, ParameterTypes: erased}
}

// Write writes reflect-config.json, resource-config.json and the preserved
// resources into dir and returns the paths written.
func (w *ConfigWriter) Write(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	var written []string

	reflectPath := filepath.Join(dir, ReflectConfigFile)
	if err := writeJSON(reflectPath, w.ReflectConfig()); err != nil {
		return nil, err
	}
	written = append(written, reflectPath)

	var rc resourceConfig
	rc.Resources.Includes = []resourcePattern{}
	for _, name := range w.Resources() {
		rc.Resources.Includes = append(rc.Resources.Includes, resourcePattern{Pattern: `\Q` + name + `\E`})
	}
	resourcePath := filepath.Join(dir, ResourceConfigFile)
	if err := writeJSON(resourcePath, rc); err != nil {
		return nil, err
	}
	written = append(written, resourcePath)

	for _, name := range w.Resources() {
		rel := filepath.FromSlash(name)
		if !filepath.IsLocal(rel) {
			return nil, fmt.Errorf("resource name %q escapes the output directory", name)
		}
		path := filepath.Join(dir, ResourcesDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating resource directory: %w", err)
		}
		data, _ := w.Resource(name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing resource %s: %w", name, err)
		}
		written = append(written, path)
	}

	return written, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var _ Sink = (*ConfigWriter)(nil)
