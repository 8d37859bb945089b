package password_test

import (
	"salon/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost

	m.Run()
}

func TestHashAndVerify(t *testing.T) {
	hashed, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.NoError(t, password.Verify("s3cret-pass", hashed))
	assert.ErrorIs(t, password.Verify("wrong", hashed), password.ErrInvalidPassword)
}

func TestHash_Salted(t *testing.T) {
	a, err := password.Hash("123456")
	require.NoError(t, err)

	b, err := password.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify_BadInput(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "$2a$04$abc"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("x", ""), password.ErrInvalidPassword)

	err := password.Verify("x", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
