// Where: internal/image/image.go
// What: Container image reference validation.
// Why: Refuse to hand the updater a target that is not a valid reference.
package image

import (
	"fmt"

	"github.com/distribution/reference"
)

// Validate checks that ref can serve as an image reference for the updater.
// Short forms without a registry are accepted; normalization is left to the
// updater itself.
func Validate(ref string) error {
	if ref == "" {
		return fmt.Errorf("empty image reference")
	}
	if _, err := reference.ParseNormalizedNamed(ref); err != nil {
		return fmt.Errorf("invalid image reference %q: %w", ref, err)
	}
	return nil
}
