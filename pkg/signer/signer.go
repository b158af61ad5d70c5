// Package signer signs exchange order messages with Ed25519.
package signer

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/sign/ed25519"

	"picostocks/pkg/core"
)

// Signer holds one Ed25519 key pair for the life of a client.
// It is safe for concurrent use.
type Signer struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// New builds a Signer from a 32-byte seed, or from the 64-byte seed||public
// form written by most Ed25519 tools. The public half of a 64-byte key must
// match its seed.
func New(key []byte) (*Signer, error) {
	switch len(key) {
	case ed25519.SeedSize:
		return fromSeed(key), nil
	case ed25519.PrivateKeySize:
		s := fromSeed(key[:ed25519.SeedSize])
		if !bytes.Equal(s.public, key[ed25519.SeedSize:]) {
			return nil, fmt.Errorf("%w: public half does not match seed", core.ErrInvalidKey)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: got %d bytes, want %d or %d",
			core.ErrInvalidKey, len(key), ed25519.SeedSize, ed25519.PrivateKeySize)
	}
}

// FromHex builds a Signer from a hex-encoded key.
func FromHex(hexKey string) (*Signer, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidKey, err)
	}
	return New(key)
}

// Generate creates a Signer with a fresh random key.
func Generate() (*Signer, error) {
	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return New(private.Seed())
}

func fromSeed(seed []byte) *Signer {
	private := ed25519.NewKeyFromSeed(seed)
	return &Signer{
		private: private,
		public:  private.Public().(ed25519.PublicKey),
	}
}

// Sign returns the hex-encoded signature of msg.
func (s *Signer) Sign(msg []byte) string {
	return hex.EncodeToString(ed25519.Sign(s.private, msg))
}

// SignMessage signs the canonical text of m.
func (s *Signer) SignMessage(m core.Message) string {
	return s.Sign(m.Bytes())
}

// Verify checks a hex signature against this signer's public key.
func (s *Signer) Verify(msg []byte, sigHex string) bool {
	return Verify(s.public, msg, sigHex)
}

// Verify checks a hex signature of msg against pub.
func Verify(pub ed25519.PublicKey, msg []byte, sigHex string) bool {
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize || len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}

func (s *Signer) PublicKey() ed25519.PublicKey {
	return s.public
}

func (s *Signer) PublicKeyHex() string {
	return hex.EncodeToString(s.public)
}

// Seed exports the private seed. Keep it out of logs.
func (s *Signer) Seed() []byte {
	return s.private.Seed()
}

// String never prints key material beyond a masked public key.
func (s *Signer) String() string {
	return fmt.Sprintf("Signer{PublicKey:%s}", maskKey(s.PublicKeyHex()))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
