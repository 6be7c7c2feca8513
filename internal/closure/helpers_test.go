package closure

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/aotreflect/internal/typeindex"
)

// fakeClasspath resolves platform types and the names it was given.
type fakeClasspath struct {
	present   map[string]bool
	resources map[string][]byte
	reads     int
}

func newClasspath(names ...string) *fakeClasspath {
	cp := &fakeClasspath{present: make(map[string]bool), resources: make(map[string][]byte)}
	for _, n := range names {
		cp.present[n] = true
	}
	return cp
}

func (c *fakeClasspath) Resolve(name string) bool {
	return strings.HasPrefix(name, "java.") || c.present[name]
}

func (c *fakeClasspath) ReadResource(name string) ([]byte, error) {
	c.reads++
	data, ok := c.resources[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

type resourceMap map[string][]byte

func (m resourceMap) AddResource(name string, data []byte) { m[name] = data }

func parseIndex(t testing.TB, doc string) *typeindex.Index {
	t.Helper()
	d, err := typeindex.Parse([]byte(doc))
	require.NoError(t, err)
	idx, err := typeindex.New(d)
	require.NoError(t, err)
	return idx
}

func lookup(t testing.TB, idx *typeindex.Index, name string) *typeindex.Type {
	t.Helper()
	typ, ok := idx.Lookup(name)
	require.True(t, ok, "type %s not indexed", name)
	return typ
}

func fieldNames(r *Record) []string {
	var out []string
	for _, f := range r.Fields() {
		out = append(out, f.Name)
	}
	return out
}

func methodSigs(r *Record) []string {
	var out []string
	for _, m := range r.Methods() {
		out = append(out, m.Signature())
	}
	return out
}

func ctorSigs(r *Record) []string {
	var out []string
	for _, c := range r.Constructors() {
		out = append(out, c.Signature())
	}
	return out
}

func recordNames(records []*Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name())
	}
	return out
}

// shapesIndex models an abstract Shape with a final Circle implementing
// Drawable and an open Square, all below an indexed Base class. Sprite
// implements Drawable outside the Shape hierarchy.
const shapesIndex = `version: "1.0.0"
types:
  - name: com.example.Base
    modifiers: [public, abstract]
    fields:
      - name: created
        type: long
        modifiers: [private]
      - name: VERSION
        type: int
        modifiers: [public, static, final]
    methods:
      - name: describe
        returns: java.lang.String
        modifiers: [public]
    constructors:
      - modifiers: [protected]
  - name: com.example.Shape
    modifiers: [public, abstract]
    superclass: com.example.Base
    fields:
      - name: id
        type: long
        modifiers: [private]
      - name: name
        type: java.lang.String
        modifiers: [public]
    methods:
      - name: area
        returns: double
        modifiers: [public, abstract]
      - name: toString
        returns: java.lang.String
        modifiers: [public]
    constructors:
      - modifiers: [protected]
  - name: com.example.Circle
    modifiers: [public, final]
    superclass: com.example.Shape
    interfaces: [com.example.Drawable]
    fields:
      - name: radius
        type: double
        modifiers: [private]
    methods:
      - name: area
        returns: double
        modifiers: [public]
      - name: equals
        params: [java.lang.Object]
        returns: boolean
        modifiers: [public]
      - name: equals
        params: [com.example.Circle]
        returns: boolean
        modifiers: [public]
      - name: hashCode
        returns: int
        modifiers: [public]
    constructors:
      - params: [double]
        modifiers: [public]
  - name: com.example.Square
    modifiers: [public]
    superclass: com.example.Shape
    fields:
      - name: side
        type: double
        modifiers: [public]
      - name: cached
        type: "double[]"
        modifiers: [private]
        annotations: [io.aotreflect.Reflected]
    constructors:
      - params: [double]
        modifiers: [public]
  - name: com.example.Drawable
    kind: interface
    modifiers: [public]
    methods:
      - name: draw
        params: [com.example.Canvas]
        returns: void
        modifiers: [public, abstract]
  - name: com.example.Sprite
    modifiers: [public]
    interfaces: [com.example.Drawable]
    fields:
      - name: secret
        type: long
        modifiers: [private]
`

func shapesClasspath() *fakeClasspath {
	return newClasspath(
		"com.example.Base",
		"com.example.Shape",
		"com.example.Circle",
		"com.example.Square",
		"com.example.Drawable",
		"com.example.Sprite",
	)
}

// widgetsIndex has Widget extending LegacyBase, which is neither indexed
// nor on the runtime classpath, next to a healthy Gadget.
const widgetsIndex = `version: "1.0.0"
types:
  - name: com.example.Widget
    modifiers: [public]
    superclass: com.example.LegacyBase
    annotations: [com.example.Serial]
    fields:
      - name: label
        type: java.lang.String
        modifiers: [public]
    constructors:
      - modifiers: [public]
  - name: com.example.Gadget
    modifiers: [public]
    annotations: [com.example.Serial]
    fields:
      - name: size
        type: int
        modifiers: [public]
      - name: owner
        type: com.example.Owner
        modifiers: [public]
    constructors:
      - modifiers: [public]
  - name: com.example.Owner
    modifiers: [public]
`

func widgetsClasspath() *fakeClasspath {
	return newClasspath("com.example.Widget", "com.example.Gadget", "com.example.Owner")
}
