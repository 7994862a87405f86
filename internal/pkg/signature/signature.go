package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Verifier authenticates webhook payloads signed with a shared secret.
// The signature is HMAC-SHA512 over the exact raw request bytes, hex encoded,
// so verification must run on the body as received, never a re-serialized
// form of it.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier with the gateway's shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify reports whether claimed matches the HMAC of body. The comparison is
// constant time to avoid leaking match length via timing.
func (v *Verifier) Verify(body []byte, claimed string) bool {
	if claimed == "" {
		return false
	}
	mac := hmac.New(sha512.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(claimed))
}
