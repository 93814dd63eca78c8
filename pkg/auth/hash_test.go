package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashService_HashPassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}

	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{name: "Hashed", password: "ana-secret"},
		{name: "Longest accepted", password: strings.Repeat("p", MaxPasswordBytes)},
		{name: "Empty", password: "", expectedError: ErrEmptyPassword},
		{name: "Too long", password: strings.Repeat("p", MaxPasswordBytes+1), expectedError: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hashService.HashPassword(tt.password)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, bcrypt.MinCost, cost)
		})
	}
}

func TestHashService_DefaultCost(t *testing.T) {
	hash, err := (&HashService{}).HashPassword("ana-secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashService_ComparePassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}
	hash, err := hashService.HashPassword("ana-secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		match    bool
	}{
		{name: "Same password", hash: hash, password: "ana-secret", match: true},
		{name: "Other password", hash: hash, password: "beto-secret", match: false},
		{name: "No stored hash", hash: "", password: "", match: false},
		{name: "Corrupt hash", hash: "not-a-bcrypt-hash", password: "ana-secret", match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, hashService.ComparePassword(tt.hash, tt.password))
		})
	}
}
