package closure

import "fmt"

// Mode selects how much of a type is registered.
type Mode int

const (
	// ModeDefaults registers public fields, non-trivial methods and
	// constructors.
	ModeDefaults Mode = iota
	// ModeFull registers every member and also walks declared interfaces.
	ModeFull
)

// String returns "defaults" or "full".
func (m Mode) String() string {
	switch m {
	case ModeDefaults:
		return "defaults"
	case ModeFull:
		return "full"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses the String form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "defaults", "default", "":
		return ModeDefaults, nil
	case "full":
		return ModeFull, nil
	default:
		return ModeDefaults, fmt.Errorf("unknown hierarchy mode %q", s)
	}
}

// HierarchySeed names a root type whose subtype hierarchy is registered.
type HierarchySeed struct {
	Root string
	Mode Mode
}
