package domain

import "time"

// Rating is a single 1–5 star score a user gave a store. At most one rating
// exists per (UserID, StoreID) pair; resubmitting overwrites Value while
// keeping ID and CreatedAt.
type Rating struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	StoreID   int       `json:"storeId"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingBounds for a valid star value.
const (
	MinRating = 1
	MaxRating = 5
)

// StoreAggregate holds the derived rating figures for one store. Average is
// 0 when Count is 0; both are computed on read and never stored.
type StoreAggregate struct {
	Average float64
	Count   int
}

// Statistics reports collection sizes for the admin dashboard.
type Statistics struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}
