package typeindex

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/typeindex.schema.json
var schemaBytes []byte

// Sentinel errors returned by Load.
var (
	ErrInvalidDocument    = errors.New("type index failed schema validation")
	ErrUnsupportedVersion = errors.New("unsupported type index version")
	ErrDuplicateType      = errors.New("duplicate type in index")
)

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation. Subject names the type or
// service entry the violation sits under, when the document names it.
type ValidationIssue struct {
	Subject string // e.g. "com.acme.Widget"
	Path    string // instance location, e.g. "/types/3/kind"
	Keyword string // failing schema keyword
	Message string
}

// String renders the issue as "subject (path): message".
func (i ValidationIssue) String() string {
	loc := i.Path
	if loc == "" {
		loc = "/"
	}
	if i.Subject != "" {
		return fmt.Sprintf("%s (%s): %s", i.Subject, loc, i.Message)
	}
	return loc + ": " + i.Message
}

// Summary joins the issues into one line for error messages.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("typeindex.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("typeindex.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates raw YAML or JSON bytes against the type index schema.
// The error return is for decoding or schema compilation failures;
// validation issues are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number values.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{Issues: indexIssues(validationErr, raw)}, nil
}

// ValidateFile reads a file and validates it against the schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// indexIssues flattens the leaf errors of ve into issues ordered by
// location, each attributed to the type or service entry it belongs to.
func indexIssues(ve *jsonschema.ValidationError, doc any) []ValidationIssue {
	seen := make(map[ValidationIssue]bool)
	var issues []ValidationIssue

	var visit func(*jsonschema.ValidationError)
	visit = func(e *jsonschema.ValidationError) {
		for _, cause := range e.Causes {
			visit(cause)
		}
		if len(e.Causes) > 0 || e.ErrorKind == nil {
			return
		}
		kw := e.ErrorKind.KeywordPath()
		if len(kw) == 0 || kw[len(kw)-1] == "$ref" || kw[len(kw)-1] == "allOf" {
			return
		}
		issue := ValidationIssue{
			Subject: subjectAt(doc, e.InstanceLocation),
			Keyword: kw[len(kw)-1],
			Message: e.ErrorKind.LocalizedString(printer),
		}
		if len(e.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(e.InstanceLocation, "/")
		}
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}
	visit(ve)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}

// subjectAt returns the name of the types[i] or services[i] entry that loc
// points into, or "" when loc is elsewhere or the entry has no name yet.
func subjectAt(doc any, loc []string) string {
	if len(loc) < 2 {
		return ""
	}
	key := map[string]string{"types": "name", "services": "service"}[loc[0]]
	if key == "" {
		return ""
	}
	root, _ := doc.(map[string]any)
	list, _ := root[loc[0]].([]any)
	i, err := strconv.Atoi(loc[1])
	if err != nil || i < 0 || i >= len(list) {
		return ""
	}
	entry, _ := list[i].(map[string]any)
	name, _ := entry[key].(string)
	return name
}
