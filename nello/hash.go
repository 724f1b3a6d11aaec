// ABOUTME: Password hashing for the private Nello API login
// ABOUTME: Derives the wire credential via a SHA-256 salt and PBKDF2-HMAC-SHA1

package nello

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 4000
	hashKeyLength  = 32
)

// HashPassword derives the credential string the login endpoint expects.
// The salt is the raw SHA-256 digest of username concatenated with password;
// the credential is the upper-case hex encoding of a 32-byte
// PBKDF2-HMAC-SHA1 key derived from the password with 4000 iterations.
// The exact pipeline is a wire-protocol requirement and must not change.
func HashPassword(username, password string) string {
	salt := sha256.Sum256([]byte(username + password))
	key := pbkdf2.Key([]byte(password), salt[:], hashIterations, hashKeyLength, sha1.New)
	return strings.ToUpper(hex.EncodeToString(key))
}
