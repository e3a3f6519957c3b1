package services

import (
	"strings"

	"hotelcore/errors"
	"hotelcore/types"

	"github.com/dgrijalva/jwt-go"
	"github.com/goccy/go-json"
)

// IdentityFromToken đọc userid, role và companyid từ token do gateway cấp.
// Chữ ký đã được xác thực ở tầng ngoài nên ở đây chỉ giải mã payload.
func IdentityFromToken(tokenString string) (types.Identity, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return types.Identity{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", nil)
	}

	// Giải mã phần payload của token
	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return types.Identity{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể giải mã token", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return types.Identity{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể parse token", err)
	}

	// Trích xuất userID và role từ claims
	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return types.Identity{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy thông tin user trong token", nil)
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID || userID <= 0 {
		return types.Identity{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy ID user trong token", nil)
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return types.Identity{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy role trong token", nil)
	}

	identity := types.Identity{UserID: uint(userID), Role: int(role)}
	if companyID, ok := userInfo["companyid"].(float64); ok && companyID > 0 {
		identity.CompanyID = uint(companyID)
	}
	return identity, nil
}
