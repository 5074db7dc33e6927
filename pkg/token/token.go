package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// manageTokenBytes gives 256 bits of entropy; the encoded token is what
// clients receive in their confirmation link.
const manageTokenBytes = 32

// NewManageToken generates the opaque secret that scopes self-service
// access to a single booking. It is not a credential for anything else.
func NewManageToken() (string, error) {
	buf := make([]byte, manageTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate manage token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
