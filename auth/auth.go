// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized rejects a mutating request whose owner key does not match
// the resource's owner.
var ErrUnauthorized = errors.New("unauthorized")

// GenerateOwnerToken creates the random bearer token handed to a creator.
// Whoever holds the token owns the polls created with it.
func GenerateOwnerToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate owner token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// DigestOwnerToken derives the owner id stored on a resource from the
// bearer token. The raw token never touches the store; a leaked database
// row is not a leaked credential.
func DigestOwnerToken(token, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(token))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// VerifyOwner checks a requester's derived owner id against a resource's
// stored owner id. The comparison is constant-time.
func VerifyOwner(requesterID, ownerID string) error {
	if ownerID == "" || !hmac.Equal([]byte(requesterID), []byte(ownerID)) {
		return ErrUnauthorized
	}
	return nil
}
