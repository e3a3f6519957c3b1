package services

import (
	"encoding/base64"
	"testing"

	apperrors "hotelcore/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsignedToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(payload)) + ".sig"
}

func TestIdentityFromToken(t *testing.T) {
	id, err := IdentityFromToken("Bearer " + unsignedToken(`{"userinfo":{"userid":42,"role":4,"companyid":7}}`))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id.UserID)
	assert.Equal(t, 4, id.Role)
	assert.Equal(t, uint(7), id.Company())
	assert.True(t, id.IsTravelCompany())
}

func TestIdentityFromToken_Invalid(t *testing.T) {
	cases := map[string]string{
		"not a jwt":    "abc",
		"no userinfo":  unsignedToken(`{"sub":"1"}`),
		"missing role": unsignedToken(`{"userinfo":{"userid":1}}`),
		"missing user": unsignedToken(`{"userinfo":{"role":0}}`),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := IdentityFromToken(tok)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidToken))
		})
	}
}
