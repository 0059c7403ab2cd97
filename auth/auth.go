// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func mac(salt, msg string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(msg))
	return h.Sum(nil)
}

// GenerateAdminKey derives the admin key for an election. The same
// election ID and salt always give the same key, so it is never stored.
func GenerateAdminKey(electionID, salt string) string {
	return base64.RawURLEncoding.EncodeToString(mac(salt, electionID))
}

// ValidateAdminKey checks the admin key for an election in constant time
func ValidateAdminKey(electionID, adminKey, salt string) error {
	expected := GenerateAdminKey(electionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for ballot records.
// Only the first 8 bytes of the HMAC are kept. The "ip:" prefix keeps
// these distinct from admin keys derived with the same salt.
func HashIP(ip, salt string) string {
	return hex.EncodeToString(mac(salt, "ip:"+ip)[:8])
}
