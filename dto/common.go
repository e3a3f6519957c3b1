package dto

import "hotelcore/response"

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// ReasonRequest là body tùy chọn cho cancel/reject
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// DateRangeQuery là query ?from=&to= dùng cho tra cứu phòng trống
type DateRangeQuery struct {
	From string `form:"from" binding:"required,isodate"`
	To   string `form:"to" binding:"required,isodate"`
}
