package typeindex

import (
	"slices"
	"strings"
)

// RootType is the implicit superclass of every class. It terminates
// superclass chains and is never registered.
const RootType = "java.lang.Object"

// Kind discriminates classes from interfaces.
type Kind string

// Kind values.
const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
)

// Modifier values recognized by the closure builder. Other modifiers are
// carried through untouched.
const (
	ModPublic    = "public"
	ModProtected = "protected"
	ModPrivate   = "private"
	ModStatic    = "static"
	ModFinal     = "final"
	ModAbstract  = "abstract"
)

// Modifiers is an unordered list of modifier keywords.
type Modifiers []string

// Has reports whether m contains the modifier.
func (m Modifiers) Has(modifier string) bool {
	return slices.Contains(m, modifier)
}

// Annotations is a list of annotation qualified names.
type Annotations []string

// Has reports whether the annotation is present.
func (a Annotations) Has(annotation string) bool {
	return slices.Contains(a, annotation)
}

// Document is the on-disk type index.
type Document struct {
	Version  string    `yaml:"version" json:"version"`
	Types    []Type    `yaml:"types" json:"types"`
	Services []Service `yaml:"services,omitempty" json:"services,omitempty"`
}

// Type describes one class or interface on the build classpath.
type Type struct {
	Name         string        `yaml:"name" json:"name"`
	Kind         Kind          `yaml:"kind" json:"kind"`
	Modifiers    Modifiers     `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Superclass   string        `yaml:"superclass,omitempty" json:"superclass,omitempty"`
	Interfaces   []string      `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Annotations  Annotations   `yaml:"annotations,omitempty" json:"annotations,omitempty"`
	Resource     string        `yaml:"resource,omitempty" json:"resource,omitempty"`
	Fields       []Field       `yaml:"fields,omitempty" json:"fields,omitempty"`
	Methods      []Method      `yaml:"methods,omitempty" json:"methods,omitempty"`
	Constructors []Constructor `yaml:"constructors,omitempty" json:"constructors,omitempty"`
}

// Field is a declared field.
type Field struct {
	Name        string      `yaml:"name" json:"name"`
	Type        string      `yaml:"type" json:"type"`
	Modifiers   Modifiers   `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Method is a declared method.
type Method struct {
	Name        string      `yaml:"name" json:"name"`
	Params      []string    `yaml:"params,omitempty" json:"params,omitempty"`
	Returns     string      `yaml:"returns,omitempty" json:"returns,omitempty"`
	Modifiers   Modifiers   `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Constructor is a declared constructor.
type Constructor struct {
	Params      []string    `yaml:"params,omitempty" json:"params,omitempty"`
	Modifiers   Modifiers   `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Service is a service-locator entry: an interface and the providers
// declared for it in the scanned service metadata.
type Service struct {
	Service   string   `yaml:"service" json:"service"`
	Providers []string `yaml:"providers" json:"providers"`
}

// IsInterface reports whether t is an interface.
func (t *Type) IsInterface() bool { return t.Kind == KindInterface }

// IsFinal reports whether t cannot be subclassed.
func (t *Type) IsFinal() bool { return t.Modifiers.Has(ModFinal) }

// ResourceName returns the path of the class file backing t, e.g.
// "com/acme/Widget.class". The explicit resource field wins when set.
func (t *Type) ResourceName() string {
	if t.Resource != "" {
		return t.Resource
	}
	return ResourceName(t.Name)
}

// Field returns the declared field with the given name.
func (t *Type) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NoArgConstructor returns the public constructor without parameters.
func (t *Type) NoArgConstructor() (Constructor, bool) {
	for _, c := range t.Constructors {
		if len(c.Params) == 0 && c.Modifiers.Has(ModPublic) {
			return c, true
		}
	}
	return Constructor{}, false
}

// IsPublic reports whether the field is public.
func (f Field) IsPublic() bool { return f.Modifiers.Has(ModPublic) }

// Signature returns "name(p1,p2)".
func (m Method) Signature() string {
	return m.Name + "(" + strings.Join(m.Params, ",") + ")"
}

// Signature returns "<init>(p1,p2)".
func (c Constructor) Signature() string {
	return "<init>(" + strings.Join(c.Params, ",") + ")"
}

// ResourceName maps a qualified class name to its class file path.
func ResourceName(name string) string {
	return strings.ReplaceAll(name, ".", "/") + ".class"
}

// Erasure strips generic arguments and array brackets from a type
// expression: "java.util.List<com.acme.Item>[]" -> "java.util.List".
func Erasure(typeName string) string {
	if i := strings.IndexByte(typeName, '<'); i >= 0 {
		typeName = typeName[:i]
	}
	return strings.TrimSpace(strings.TrimRight(typeName, "[] "))
}

// primitives are the built-in value types that never need resolving.
var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
}

// IsPrimitive reports whether the erased type name is a primitive.
func IsPrimitive(typeName string) bool {
	return primitives[Erasure(typeName)]
}

// IsTypeVariable reports whether a type expression names a type parameter
// such as "T" or "E[]". Any unqualified, non-primitive name counts as one.
func IsTypeVariable(typeName string) bool {
	name := Erasure(typeName)
	return name != "" && !strings.Contains(name, ".") && !primitives[name]
}

// RuntimeName erases a type expression to the name the runtime reports for
// it, keeping array dimensions: "java.util.List<a.Item>[]" becomes
// "java.util.List[]". Type variables erase to RootType.
func RuntimeName(typeName string) string {
	name := Erasure(typeName)
	if IsTypeVariable(name) {
		name = RootType
	}
	tail := typeName
	if i := strings.LastIndexByte(tail, '>'); i >= 0 {
		tail = tail[i+1:]
	}
	return name + strings.Repeat("[]", strings.Count(tail, "[]"))
}
