package services

import (
	"sort"
	"strings"
	"unicode"

	apperrors "hotelcore/errors"
	"hotelcore/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// maxSuggestionDistance giới hạn độ lệch để gợi ý loại phòng
const maxSuggestionDistance = 3

// NormalizeRoomType so khớp không phân biệt hoa thường và dấu ("Phòng Đôi" == "phong doi")
func NormalizeRoomType(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(removeDiacritics(s))))
}

// removeDiacritics bỏ dấu tổ hợp; "đ" còn lại do unidecode xử lý
func removeDiacritics(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hotelRoomTypes(tx *gorm.DB, hotelID uint) ([]string, error) {
	var types []string
	err := tx.Model(&models.Room{}).Where("hotel_id = ?", hotelID).Distinct().Pluck("type", &types).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(types)
	return types, nil
}

// resolveRoomType returns the stored spelling of requested for the hotel.
func resolveRoomType(tx *gorm.DB, hotelID uint, requested string) (string, error) {
	types, err := hotelRoomTypes(tx, hotelID)
	if err != nil {
		return "", dbErr("load room types", err)
	}
	want := NormalizeRoomType(requested)
	for _, t := range types {
		if NormalizeRoomType(t) == want {
			return t, nil
		}
	}
	appErr := apperrors.NotFound("room type", requested)
	if s := suggestRoomType(requested, types); s != "" {
		appErr.WithDetail("suggestion", s)
	}
	return "", appErr
}

func suggestRoomType(requested string, types []string) string {
	if len(types) == 0 {
		return ""
	}
	normalized := make([]string, len(types))
	byNorm := make(map[string]string, len(types))
	for i, t := range types {
		normalized[i] = NormalizeRoomType(t)
		byNorm[normalized[i]] = t
	}
	want := NormalizeRoomType(requested)
	cm := closestmatch.New(normalized, []int{2, 3})
	best := cm.Closest(want)
	if best == "" {
		return ""
	}
	distance := levenshtein.DistanceForStrings([]rune(want), []rune(best), levenshtein.DefaultOptions)
	if distance > maxSuggestionDistance {
		return ""
	}
	return byNorm[best]
}
