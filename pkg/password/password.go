// Package password hashes and verifies admin passwords with a salted slow hash.
// The scheme is chosen by configuration; plaintext comparison is not supported.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

var (
	// ErrMismatch is returned when the password does not match the hash
	ErrMismatch = errors.New("password mismatch")

	// ErrUnsupportedHash is returned when the stored hash belongs to another scheme
	ErrUnsupportedHash = errors.New("hash does not belong to the configured scheme")
)

// Hasher hashes new passwords and compares candidates against stored hashes
type Hasher interface {
	Scheme() string
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// New returns the hasher for the given scheme
func New(scheme string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeBcrypt:
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return &Bcrypt{Cost: bcryptCost}, nil
	case SchemeArgon2id:
		return DefaultArgon2id(), nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
}

// Bcrypt hashes with golang.org/x/crypto/bcrypt
type Bcrypt struct {
	Cost int
}

func (b *Bcrypt) Scheme() string { return SchemeBcrypt }

func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Compare(hash, password string) error {
	if !strings.HasPrefix(hash, "$2") {
		return ErrUnsupportedHash
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

// Argon2id hashes with argon2.IDKey and encodes in the PHC string format:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
type Argon2id struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2id returns the RFC 9106 second recommended parameter set
func DefaultArgon2id() *Argon2id {
	return &Argon2id{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (a *Argon2id) Scheme() string { return SchemeArgon2id }

func (a *Argon2id) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.Memory, a.Iterations, a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (a *Argon2id) Compare(hash, password string) error {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != SchemeArgon2id {
		return ErrUnsupportedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return fmt.Errorf("unsupported argon2 version %d", version)
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return fmt.Errorf("malformed argon2id parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("malformed argon2id salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("malformed argon2id key: %w", err)
	}

	//nolint:gosec // G115: key length comes from our own encoded hash
	got := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
