// Package config loads the project settings of a reflection closure pass
// from aotreflect.yaml and AOTREFLECT_* environment variables. It also
// edits single keys in that file for the config command.
package config
