package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew(t *testing.T) {
	h, err := New("", 0)
	require.NoError(t, err)
	assert.Equal(t, SchemeBcrypt, h.Scheme())

	h, err = New("ARGON2ID", 0)
	require.NoError(t, err)
	assert.Equal(t, SchemeArgon2id, h.Scheme())

	_, err = New("plaintext", 0)
	assert.Error(t, err)

	_, err = New("bcrypt", 64)
	assert.Error(t, err)
}

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := &Bcrypt{Cost: bcrypt.MinCost}

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.NoError(t, h.Compare(hash, "secret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)
	assert.ErrorIs(t, h.Compare("secret", "secret"), ErrUnsupportedHash, "plaintext stored value must never match")
}

func TestArgon2id_HashAndCompare(t *testing.T) {
	h := &Argon2id{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$m=1024,t=1,p=1$")

	assert.NoError(t, h.Compare(hash, "secret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)

	other, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ")
}

func TestSchemesRejectEachOther(t *testing.T) {
	b := &Bcrypt{Cost: bcrypt.MinCost}
	a := &Argon2id{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

	bh, err := b.Hash("secret")
	require.NoError(t, err)
	ah, err := a.Hash("secret")
	require.NoError(t, err)

	assert.ErrorIs(t, a.Compare(bh, "secret"), ErrUnsupportedHash)
	assert.ErrorIs(t, b.Compare(ah, "secret"), ErrUnsupportedHash)
}
