package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fiam/gounidecode/unidecode"
	"gorm.io/gorm"
)

type Hotel struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;size:160"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	StarRating    int       `json:"starRating"`
	StartingPrice float64   `json:"startingPrice"` // giá phòng thấp nhất, cache
	Rooms         []Room    `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify transliterates name to ASCII before building the slug ("Khách sạn Đà Lạt" -> "khach-san-da-lat").
func Slugify(name string) string {
	s := strings.ToLower(unidecode.Unidecode(name))
	s = slugInvalid.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (h *Hotel) BeforeCreate(tx *gorm.DB) error {
	if h.Slug != "" {
		return nil
	}
	base := Slugify(h.Name)
	if base == "" {
		base = "hotel"
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(&Hotel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	h.Slug = slug
	return nil
}
