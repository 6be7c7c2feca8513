// Package cli defines the Cobra command tree for the aotreflect CLI. Each
// file in this package registers one top-level command (build, index,
// classpath, config, version) with the root command. Command
// implementations delegate to internal packages for the work and only handle
// flag parsing and output formatting.
package cli
