package userseed

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	saltSizeBytesConstant           = 16
	hashSeparatorConstant           = "$"
	saltReadErrorTemplateConstant   = "unable to generate password salt: %w"
	encodedHashSegmentCountConstant = 2
)

// HashPassword derives a salted SHA-256 digest encoded as "<salt>$<digest>",
// drawing the salt from the provided random source. A nil source falls back to
// the cryptographic default.
func HashPassword(randomSource io.Reader, password string) (string, error) {
	if randomSource == nil {
		randomSource = rand.Reader
	}

	saltBytes := make([]byte, saltSizeBytesConstant)
	if _, readError := io.ReadFull(randomSource, saltBytes); readError != nil {
		return "", fmt.Errorf(saltReadErrorTemplateConstant, readError)
	}

	saltHex := hex.EncodeToString(saltBytes)
	digest := sha256.Sum256([]byte(password + saltHex))
	return saltHex + hashSeparatorConstant + hex.EncodeToString(digest[:]), nil
}

// VerifyPassword reports whether the password matches the encoded salted digest.
func VerifyPassword(password string, encodedHash string) bool {
	segments := strings.Split(encodedHash, hashSeparatorConstant)
	if len(segments) != encodedHashSegmentCountConstant {
		return false
	}

	saltHex := segments[0]
	digest := sha256.Sum256([]byte(password + saltHex))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(digest[:])), []byte(segments[1])) == 1
}
