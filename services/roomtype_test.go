package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestNormalizeRoomType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Deluxe", "deluxe"},
		{"  DELUXE ", "deluxe"},
		{"Phòng Đôi", "phong doi"},
		{norm.NFD.String("Phòng Đôi"), "phong doi"},
		{"Gia đình", "gia dinh"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRoomType(tt.in), tt.in)
	}
}

func TestSuggestRoomType(t *testing.T) {
	types := []string{"Deluxe", "Standard", "Phòng Đôi"}

	assert.Equal(t, "Deluxe", suggestRoomType("Delux", types))
	assert.Equal(t, "Phòng Đôi", suggestRoomType("phong doj", types))
	assert.Empty(t, suggestRoomType("Presidential Suite", types))
	assert.Empty(t, suggestRoomType("Deluxe", nil))
}
