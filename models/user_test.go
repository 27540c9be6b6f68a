package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSanitizeNormalisesFields(t *testing.T) {
	u := &User{
		Firstname: "  Ada ",
		Lastname:  " Obi ",
		Email:     " Ada.OBI@Example.COM ",
	}
	require.NoError(t, u.Sanitize())
	assert.Equal(t, "Ada", u.Firstname)
	assert.Equal(t, "Obi", u.Lastname)
	assert.Equal(t, "ada.obi@example.com", u.Email)
}

func TestValidatePassword(t *testing.T) {
	u := &User{Password: "short1"}
	assert.Error(t, u.ValidatePassword())

	u.Password = "longenoughbutnodigits"
	assert.Error(t, u.ValidatePassword())

	u.Password = "l0ngenough1"
	assert.NoError(t, u.ValidatePassword())
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	u := &User{HashedPassword: string(hashed)}
	assert.NoError(t, u.VerifyPassword("s3cretpass"))
	assert.Error(t, u.VerifyPassword("wrongpass"))
}
