package auth

import (
	"errors"
	"testing"
)

func TestAdminKeyGuard(t *testing.T) {
	hash, err := HashKey("s3cret-admin-key")
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}
	guard := NewAdminKeyGuard(hash)

	if err := guard.Check("s3cret-admin-key"); err != nil {
		t.Errorf("valid key rejected: %v", err)
	}
	if err := guard.Check("wrong-key"); !errors.Is(err, ErrInvalidAdminKey) {
		t.Errorf("wrong key error = %v, want ErrInvalidAdminKey", err)
	}
	if err := guard.Check(""); !errors.Is(err, ErrInvalidAdminKey) {
		t.Errorf("empty key error = %v, want ErrInvalidAdminKey", err)
	}
}

func TestAdminKeyGuardUnconfigured(t *testing.T) {
	guard := NewAdminKeyGuard("")

	if err := guard.Check("any-key"); !errors.Is(err, ErrInvalidAdminKey) {
		t.Errorf("unconfigured guard accepted a key: %v", err)
	}
}
