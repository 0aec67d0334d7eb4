package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	u, err := CreateUser("Ada Shop", " Ada@Example.com ", "secret-pass")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "secret-pass", u.Password)
	assert.True(t, u.CheckPassword("secret-pass"))
	assert.False(t, u.CheckPassword("wrong-pass"))
}

func TestCreateUserValidates(t *testing.T) {
	_, err := CreateUser("Al", "ada@example.com", "secret-pass")
	assert.Error(t, err)

	_, err = CreateUser("Ada Shop", "not-an-email", "secret-pass")
	assert.Error(t, err)

	_, err = CreateUser("Ada Shop", "ada@example.com", "123")
	assert.Error(t, err)
}
