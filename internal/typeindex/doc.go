// Package typeindex loads the static type index produced by the build-time
// class scanner. The index is a YAML or JSON document listing every type on
// the build classpath with its kind, modifiers, supertypes, annotations and
// declared members, plus the service-locator provider entries. Documents are
// validated against an embedded JSON schema before use.
//
// An Index answers the four hierarchy queries the closure builder needs:
// types annotated by X, direct subtypes of T, direct interfaces of T and the
// ordered superclass chain of T. It never touches the runtime classpath.
package typeindex
