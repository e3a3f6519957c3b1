package types

import "hotelcore/constants"

// Identity là thông tin người gọi đã được xác thực ở tầng ngoài
type Identity struct {
	UserID    uint `json:"userId"`
	Role      int  `json:"role"`
	CompanyID uint `json:"companyId,omitempty"`
}

func (i Identity) IsStaff() bool {
	return constants.IsStaff(i.Role)
}

func (i Identity) IsManager() bool {
	return constants.IsManager(i.Role)
}

func (i Identity) IsTravelCompany() bool {
	return i.Role == constants.RoleTravelCompany
}

// Company returns the travel company the caller acts for.
func (i Identity) Company() uint {
	if i.CompanyID != 0 {
		return i.CompanyID
	}
	return i.UserID
}
