package commands

import (
	"context"
	"math"
	"sort"

	"hotelcore/constants"
	apperrors "hotelcore/errors"
	"hotelcore/models"

	"gorm.io/gorm"
)

type HotelDailyReport struct {
	HotelID  uint    `json:"hotelId"`
	Attended int     `json:"attended"`
	NoShows  int     `json:"noShows"`
	Revenue  float64 `json:"revenue"`
}

// DailyReport covers reservations arriving on Date that were attended or became no-shows.
type DailyReport struct {
	Date     string             `json:"date"`
	Attended int                `json:"attended"`
	NoShows  int                `json:"noShows"`
	Revenue  float64            `json:"revenue"`
	Hotels   []HotelDailyReport `json:"hotels"`
}

type reportRow struct {
	HotelID uint
	Status  string
	Count   int
	Revenue float64
}

// BuildDailyReport only reads.
func BuildDailyReport(ctx context.Context, db *gorm.DB, day string) (*DailyReport, error) {
	var rows []reportRow
	if err := db.WithContext(ctx).Model(&models.Reservation{}).
		Select("hotel_id, status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("arrival_date = ? AND status IN ?", day, []string{
			constants.ReservationCheckedIn, constants.ReservationCheckedOut, constants.ReservationNoShow,
		}).
		Group("hotel_id, status").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.DB("build daily report", err)
	}

	byHotel := map[uint]*HotelDailyReport{}
	report := &DailyReport{Date: day, Hotels: []HotelDailyReport{}}
	for _, row := range rows {
		h, ok := byHotel[row.HotelID]
		if !ok {
			h = &HotelDailyReport{HotelID: row.HotelID}
			byHotel[row.HotelID] = h
		}
		if row.Status == constants.ReservationNoShow {
			h.NoShows += row.Count
			report.NoShows += row.Count
		} else {
			h.Attended += row.Count
			report.Attended += row.Count
		}
		h.Revenue += row.Revenue
		report.Revenue += row.Revenue
	}
	for _, h := range byHotel {
		h.Revenue = math.Round(h.Revenue*100) / 100
		report.Hotels = append(report.Hotels, *h)
	}
	sort.Slice(report.Hotels, func(i, j int) bool { return report.Hotels[i].HotelID < report.Hotels[j].HotelID })
	report.Revenue = math.Round(report.Revenue*100) / 100
	return report, nil
}
