package admin

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// KeyChecker compares candidate access keys against the configured one.
// Only a bcrypt hash of the lower-cased key is kept in memory.
type KeyChecker struct {
	hash []byte
}

func NewKeyChecker(accessKey string, cost int) (*KeyChecker, error) {
	if strings.TrimSpace(accessKey) == "" {
		return nil, fmt.Errorf("admin access key is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(foldKey(accessKey)), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin access key: %w", err)
	}
	return &KeyChecker{hash: hash}, nil
}

// Matches reports whether candidate equals the access key, ignoring case.
func (k *KeyChecker) Matches(candidate string) bool {
	return bcrypt.CompareHashAndPassword(k.hash, []byte(foldKey(candidate))) == nil
}

func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
