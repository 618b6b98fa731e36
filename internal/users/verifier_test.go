package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainVerifier(t *testing.T) {
	v := PlainVerifier{}

	stored, err := v.Hash("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored)

	assert.True(t, v.Verify("secret", stored))
	assert.False(t, v.Verify("wrong", stored))
	assert.False(t, v.Verify("", stored))
}

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{}

	stored, err := v.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored)

	assert.True(t, v.Verify("secret", stored))
	assert.False(t, v.Verify("wrong", stored))
}

func TestNewVerifier(t *testing.T) {
	tests := []struct {
		scheme  string
		want    CredentialVerifier
		wantErr bool
	}{
		{scheme: "", want: PlainVerifier{}},
		{scheme: "plain", want: PlainVerifier{}},
		{scheme: "bcrypt", want: BcryptVerifier{}},
		{scheme: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("scheme "+tt.scheme, func(t *testing.T) {
			v, err := NewVerifier(tt.scheme)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}
