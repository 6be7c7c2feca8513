// Package classpath models the runtime classpath the compiled image will
// actually see. It is independent of the static type index: a type present
// in the index may be missing here, which is how degraded registrations
// are detected.
//
// A classpath is an ordered list of class roots. Each root is a directory
// holding class files laid out by package (com/acme/Widget.class); the first
// root containing a class wins.
package classpath
