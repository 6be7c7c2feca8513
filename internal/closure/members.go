package closure

import "github.com/agentx-labs/aotreflect/internal/typeindex"

// trivialMethods are never registered. Every type inherits them from the
// root object type and the compiler keeps them regardless.
var trivialMethods = map[string]bool{
	"hashCode()":               true,
	"toString()":               true,
	"equals(java.lang.Object)": true,
}

// IsTrivialMethod reports whether m is one of the universally inherited
// methods excluded from registration.
func IsTrivialMethod(m typeindex.Method) bool {
	return trivialMethods[m.Signature()]
}

// defaultField reports whether f is registered in Defaults mode: public
// fields, plus non-public ones carrying the marker annotation.
func defaultField(f typeindex.Field, marker string) bool {
	return f.IsPublic() || (marker != "" && f.Annotations.Has(marker))
}
