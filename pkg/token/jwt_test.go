package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestCreateAndParse(t *testing.T) {
	tokenStr, err := Create(testSecret, 42, "Admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := Parse(testSecret, tokenStr)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.EmployeeID)
	assert.Equal(t, "Admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_WrongSecret(t *testing.T) {
	tokenStr, err := Create(testSecret, 42, "Employee", time.Hour)
	require.NoError(t, err)

	_, err = Parse("another-secret", tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	tokenStr, err := Create(testSecret, 42, "Employee", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(testSecret, tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
