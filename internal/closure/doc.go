// Package closure computes the reflection-usage closure of a program for
// ahead-of-time compilation.
//
// A Pass starts from seeds (annotations, class hierarchies, explicit
// classes, service descriptor and service locator roots), walks the type
// graph exposed by an Index, and accumulates one Record per type that must
// stay introspectable. Records are validated lazily against the runtime
// classpath; a record whose superclass chain or field types cannot be
// resolved is marked invalid and dropped at emission without failing the
// pass. All state lives in the Pass and is discarded with it.
package closure
