// Package password computes and checks credential digests.
//
// A digest covers "username:password". With a pepper it is HMAC-SHA256 keyed by
// the pepper, without one it is plain SHA-256 (the format of older data files).
// Stored bcrypt hashes are accepted as well.
package password

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Hasher struct {
	pepper []byte
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: []byte(pepper)}
}

// Digest returns the hex digest stored in a user's hash field.
func (h *Hasher) Digest(username, password string) string {
	input := []byte(username + ":" + password)
	if len(h.pepper) == 0 {
		sum := sha256.Sum256(input)
		return hex.EncodeToString(sum[:])
	}
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write(input)
	return hex.EncodeToString(mac.Sum(nil))
}

// Matches reports whether stored is the digest of the given credentials.
func (h *Hasher) Matches(stored, username, password string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(username+":"+password)) == nil
	}
	computed := h.Digest(username, password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(computed)) == 1
}

// Bcrypt returns a salted bcrypt hash of "username:password".
func Bcrypt(username, password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(username+":"+password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
