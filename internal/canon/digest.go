package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digest domains. The version suffix leaves room for algorithm changes.
const (
	DomainSnapshot = "dbgstate/snapshot/v1"
	DomainAction   = "dbgstate/action/v1"
)

// Hash computes SHA-256(domain || 0x00 || data) as lowercase hex.
func Hash(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest canonicalises v and hashes it under domain.
func Digest(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", domain, err)
	}
	return Hash(domain, data), nil
}
