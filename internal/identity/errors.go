package identity

import "fmt"

// IdentityError reports a recipe that produced zero ingredient signatures and
// therefore has no content identity. The matcher surfaces these as
// unfingerprintable rather than dropping them.
type IdentityError struct {
	Recipe string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("recipe %q yields no ingredient signatures", e.Recipe)
}
