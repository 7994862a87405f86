package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	v := NewVerifier("whsec_test")
	body := []byte(`{"event":"charge.success","data":{"reference":"ord_1"}}`)

	if !v.Verify(body, sign("whsec_test", body)) {
		t.Errorf("valid signature rejected")
	}
}

func TestVerifyRejects(t *testing.T) {
	v := NewVerifier("whsec_test")
	body := []byte(`{"event":"charge.success"}`)
	valid := sign("whsec_test", body)

	tests := []struct {
		name    string
		body    []byte
		claimed string
	}{
		{"empty signature", body, ""},
		{"wrong secret", body, sign("whsec_other", body)},
		{"tampered body", []byte(`{"event":"charge.failed"}`), valid},
		{"truncated signature", body, valid[:len(valid)-2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v.Verify(tt.body, tt.claimed) {
				t.Errorf("invalid signature accepted")
			}
		})
	}
}

func TestVerifyFlippedByteVariant(t *testing.T) {
	v := NewVerifier("whsec_test")
	body := []byte(`{}`)
	valid := sign("whsec_test", body)

	flipped := []byte(valid)
	if flipped[0] == 'f' {
		flipped[0] = '0'
	} else {
		flipped[0] = 'f'
	}
	if v.Verify(body, string(flipped)) {
		t.Errorf("one-character difference accepted")
	}
}
