package emit

import "github.com/agentx-labs/aotreflect/internal/typeindex"

// Sink receives the registrations of a pass. Implementations are
// append-only and ignore duplicates.
type Sink interface {
	RegisterType(t *typeindex.Type)
	RegisterField(t *typeindex.Type, f typeindex.Field)
	RegisterMethod(t *typeindex.Type, m typeindex.Method)
	RegisterConstructor(t *typeindex.Type, c typeindex.Constructor)
	AddResource(name string, data []byte)
}
