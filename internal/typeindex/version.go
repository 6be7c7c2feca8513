package typeindex

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the range of document versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// CheckVersion returns an error unless version satisfies SupportedVersions.
// A leading "v" is tolerated.
func CheckVersion(version string) error {
	v, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("parsing type index version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedVersion, version, SupportedVersions)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
