package testutil

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// BearerToken builds an unsigned gateway token carrying the given identity claims.
func BearerToken(userID uint, role int, companyID uint) string {
	header := jwt.EncodeSegment([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := jwt.EncodeSegment([]byte(fmt.Sprintf(
		`{"userinfo":{"userid":%d,"role":%d,"companyid":%d}}`, userID, role, companyID)))
	return "Bearer " + header + "." + payload + ".unsigned"
}
