package identity

import (
	"crypto/sha256"
	"encoding/hex"

	"mediamerge/internal/medium"
)

// Signature fields are joined with control separators so no identifier can
// collide with a neighboring field or record in the canonical serialization.
const (
	fieldSeparator  = "\x1f"
	recordSeparator = "\x1e"
)

// Fingerprint computes the canonical content digest for a recipe: the SHA-256
// of its sorted, deduplicated ingredient-signature set, returned as lowercase
// hex. The digest is stable across calls, process restarts, ingredient
// reordering, duplicate entries, and concentration changes. A recipe yielding
// zero signatures fails with *IdentityError.
func Fingerprint(recipe *medium.Recipe) (string, error) {
	sigs := Signatures(recipe)
	if len(sigs) == 0 {
		return "", &IdentityError{Recipe: recipe.Label()}
	}

	h := sha256.New()
	for _, sig := range sigs {
		h.Write([]byte(sig.Source))
		h.Write([]byte(fieldSeparator))
		h.Write([]byte(sig.Identifier))
		h.Write([]byte(recordSeparator))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
