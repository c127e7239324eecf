// Package keys loads the secp256k1 key that signs rebalancing transactions.
// A key is supplied either as plain hex, as an AES-256-GCM encrypted blob
// unlocked by a master key from the environment, or derived with HKDF from a
// server seed and a wallet reference.
package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/hkdf"

	"github.com/chainsafe/settle-rebalancer/pkg/config"
)

const (
	privateKeySize = 32
	masterKeySize  = 32
	minSeedSize    = 32
)

// ErrNoSigner is returned when the signer configuration names no key source.
var ErrNoSigner = errors.New("no signer key configured")

// LoadSigner resolves the signing key described by cfg. getenv is used to read
// the master key and seed so tests can supply their own environment.
func LoadSigner(cfg config.SignerConfig, getenv func(string) string) (*ecdsa.PrivateKey, error) {
	switch {
	case cfg.PrivateKey != "":
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}
		return key, nil

	case cfg.EncryptedPrivateKey != "":
		masterKey, err := MasterKeyFromBase64(getenv(cfg.MasterKeyEnv))
		if err != nil {
			return nil, fmt.Errorf("failed to read master key from %s: %w", cfg.MasterKeyEnv, err)
		}
		raw, err := DecryptPrivateKey(cfg.EncryptedPrivateKey, masterKey)
		if err != nil {
			return nil, err
		}
		return crypto.ToECDSA(raw)

	case cfg.SeedEnv != "":
		seed, err := hex.DecodeString(strings.TrimPrefix(getenv(cfg.SeedEnv), "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed from %s: %w", cfg.SeedEnv, err)
		}
		return DeriveSignerKey(cfg.WalletRef, seed)

	default:
		return nil, ErrNoSigner
	}
}

// DeriveSignerKey deterministically derives a signing key for walletRef from serverSeed
// using HKDF with SHA-256. The same inputs always produce the same key.
func DeriveSignerKey(walletRef string, serverSeed []byte) (*ecdsa.PrivateKey, error) {
	if len(serverSeed) < minSeedSize {
		return nil, fmt.Errorf("server seed must be at least %d bytes", minSeedSize)
	}
	if walletRef == "" {
		return nil, fmt.Errorf("wallet ref is required for key derivation")
	}

	reader := hkdf.New(sha256.New, serverSeed, nil, []byte("settle-signer-"+walletRef))

	raw := make([]byte, privateKeySize)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return nil, fmt.Errorf("failed to derive key seed: %w", err)
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create private key: %w", err)
	}
	return key, nil
}

// EncryptPrivateKey encrypts a 32-byte private key with AES-256-GCM.
// The result is base64 of nonce || ciphertext || tag.
func EncryptPrivateKey(privateKey, masterKey []byte) (string, error) {
	if len(privateKey) != privateKeySize {
		return "", fmt.Errorf("private key must be %d bytes (secp256k1)", privateKeySize)
	}

	gcm, err := newGCM(masterKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	return base64.StdEncoding.EncodeToString(gcm.Seal(nonce, nonce, privateKey, nil)), nil
}

// DecryptPrivateKey reverses EncryptPrivateKey.
func DecryptPrivateKey(encrypted string, masterKey []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	if len(plaintext) != privateKeySize {
		return nil, fmt.Errorf("decrypted key has wrong size: got %d, want %d", len(plaintext), privateKeySize)
	}
	return plaintext, nil
}

func newGCM(masterKey []byte) (cipher.AEAD, error) {
	if len(masterKey) != masterKeySize {
		return nil, fmt.Errorf("master key must be %d bytes (AES-256)", masterKeySize)
	}
	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// GenerateMasterKey returns a random 32-byte master key.
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// MasterKeyFromBase64 decodes a base64-encoded master key
func MasterKeyFromBase64(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("master key is empty")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key: %w", err)
	}
	if len(key) != masterKeySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", masterKeySize, len(key))
	}
	return key, nil
}

// MasterKeyToBase64 encodes a master key as base64 for storage
func MasterKeyToBase64(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}
