// Package emit pushes validated closure records to a registration sink and
// writes the native-image reflection and resource configuration files.
package emit
