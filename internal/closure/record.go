package closure

import (
	"fmt"
	"sort"

	"github.com/agentx-labs/aotreflect/internal/typeindex"
)

// State is the validation state of a Record.
type State int

// Record states. Created moves to Validating on the first Validate call and
// ends in exactly one of Valid or Invalid.
const (
	StateCreated State = iota
	StateValidating
	StateValid
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateValidating:
		return "validating"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Record accumulates the members of one type that must be registered.
//
// Member sets only grow. Methods on a nil *Record are no-ops so callers can
// ignore excluded types.
type Record struct {
	typ      *typeindex.Type
	chain    []string
	resolver Resolver
	marker   string

	state   State
	missing string

	fields       map[string]typeindex.Field
	methods      map[string]typeindex.Method
	constructors map[string]typeindex.Constructor

	defaults bool
	all      bool
}

// NewRecord creates an empty record for t. chain is the superclass chain
// checked by Validate and marker the annotation that opts non-public fields
// into Defaults mode.
func NewRecord(t *typeindex.Type, chain []string, resolver Resolver, marker string) *Record {
	return &Record{
		typ:          t,
		chain:        chain,
		resolver:     resolver,
		marker:       marker,
		fields:       make(map[string]typeindex.Field),
		methods:      make(map[string]typeindex.Method),
		constructors: make(map[string]typeindex.Constructor),
	}
}

// Type returns the registered type.
func (r *Record) Type() *typeindex.Type { return r.typ }

// Name returns the qualified name of the registered type.
func (r *Record) Name() string { return r.typ.Name }

// State returns the validation state.
func (r *Record) State() State { return r.state }

// Validated reports whether Validate has completed.
func (r *Record) Validated() bool {
	return r.state == StateValid || r.state == StateInvalid
}

// Valid reports whether the record validated successfully. It is false
// before validation.
func (r *Record) Valid() bool { return r.state == StateValid }

// Missing returns the first name that failed to resolve.
func (r *Record) Missing() string { return r.missing }

// Err returns an error wrapping ErrMissingDependentType for an invalid
// record, nil otherwise.
func (r *Record) Err() error {
	if r.state != StateInvalid {
		return nil
	}
	if r.missing == r.typ.Name {
		return fmt.Errorf("%w: %s is not on the runtime classpath", ErrMissingDependentType, r.missing)
	}
	return fmt.Errorf("%w: %s depends on %s", ErrMissingDependentType, r.typ.Name, r.missing)
}

// Validate checks the type, its superclass chain and the erased types of
// its declared fields against the runtime classpath. Fields typed by a type
// variable are not checked. The outcome is
// computed once; later calls return it unchanged.
func (r *Record) Validate() bool {
	if r == nil {
		return false
	}
	if r.Validated() {
		return r.Valid()
	}

	r.state = StateValidating
	if missing, ok := r.firstMissing(); ok {
		r.missing = missing
		r.state = StateInvalid
		return false
	}
	r.state = StateValid
	return true
}

func (r *Record) firstMissing() (string, bool) {
	if !r.resolves(r.typ.Name) {
		return r.typ.Name, true
	}
	for _, name := range r.chain {
		if !r.resolves(name) {
			return name, true
		}
	}
	for _, f := range r.typ.Fields {
		if typeindex.IsTypeVariable(f.Type) {
			continue
		}
		if !r.resolves(f.Type) {
			return typeindex.Erasure(f.Type), true
		}
	}
	return "", false
}

func (r *Record) resolves(typeName string) bool {
	name := typeindex.Erasure(typeName)
	if name == "" || typeindex.IsPrimitive(name) {
		return true
	}
	return r.resolver.Resolve(name)
}

// AddDefaults adds public fields, marked non-public fields, non-trivial
// methods and, for classes, constructors. It does nothing on an invalid
// record.
func (r *Record) AddDefaults() {
	if r == nil || r.defaults || !r.Validate() {
		return
	}
	r.defaults = true
	for _, f := range r.typ.Fields {
		if defaultField(f, r.marker) {
			r.fields[f.Name] = f
		}
	}
	r.addMethodsAndConstructors()
}

// AddAll adds every declared field, non-trivial methods and, for classes,
// constructors. It does nothing on an invalid record.
func (r *Record) AddAll() {
	if r == nil || r.all || !r.Validate() {
		return
	}
	r.all = true
	r.defaults = true
	for _, f := range r.typ.Fields {
		r.fields[f.Name] = f
	}
	r.addMethodsAndConstructors()
}

func (r *Record) addMethodsAndConstructors() {
	for _, m := range r.typ.Methods {
		if !IsTrivialMethod(m) {
			r.methods[m.Signature()] = m
		}
	}
	if r.typ.IsInterface() {
		return
	}
	for _, c := range r.typ.Constructors {
		r.constructors[c.Signature()] = c
	}
}

// AddField adds a single field.
func (r *Record) AddField(f typeindex.Field) {
	if r == nil {
		return
	}
	r.fields[f.Name] = f
}

// AddMethod adds a single method. Trivial methods are ignored.
func (r *Record) AddMethod(m typeindex.Method) {
	if r == nil || IsTrivialMethod(m) {
		return
	}
	r.methods[m.Signature()] = m
}

// AddConstructor adds a single constructor. Interfaces have none.
func (r *Record) AddConstructor(c typeindex.Constructor) {
	if r == nil || r.typ.IsInterface() {
		return
	}
	r.constructors[c.Signature()] = c
}

// Fields returns the registered fields sorted by name.
func (r *Record) Fields() []typeindex.Field {
	out := make([]typeindex.Field, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Methods returns the registered methods sorted by signature.
func (r *Record) Methods() []typeindex.Method {
	out := make([]typeindex.Method, 0, len(r.methods))
	for _, m := range r.methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Signature() < out[j].Signature() })
	return out
}

// Constructors returns the registered constructors sorted by signature.
func (r *Record) Constructors() []typeindex.Constructor {
	out := make([]typeindex.Constructor, 0, len(r.constructors))
	for _, c := range r.constructors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Signature() < out[j].Signature() })
	return out
}

// HasField reports whether the named field is registered.
func (r *Record) HasField(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// HasMethod reports whether the method signature is registered.
func (r *Record) HasMethod(signature string) bool {
	_, ok := r.methods[signature]
	return ok
}

// HasConstructor reports whether the constructor signature is registered.
func (r *Record) HasConstructor(signature string) bool {
	_, ok := r.constructors[signature]
	return ok
}
