package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const derivedKeySize = 32

// Keys are the purpose-bound secrets derived from the application secret.
type Keys struct {
	SessionHash  []byte
	TokenSigning []byte
}

// DeriveKeys expands secret into independent keys with HKDF-SHA256.
func DeriveKeys(secret string) (Keys, error) {
	if secret == "" {
		return Keys{}, errors.New("empty application secret")
	}

	sessionHash, err := deriveKey(secret, "dailycheck/session-hash")
	if err != nil {
		return Keys{}, err
	}
	signing, err := deriveKey(secret, "dailycheck/token-signing")
	if err != nil {
		return Keys{}, err
	}
	return Keys{SessionHash: sessionHash, TokenSigning: signing}, nil
}

func deriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, derivedKeySize)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("deriving %s key: %w", info, err)
	}
	return key, nil
}
