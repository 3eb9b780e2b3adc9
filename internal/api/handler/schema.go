package handler

import "time"

// Request types. Validation rules live in the struct tags and map 1:1 to the
// field validation enforced before anything is persisted.

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=16,password"`
	Address  string `json:"address"  validate:"required,max=400"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=16,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=16,password"`
	Address  string `json:"address"  validate:"required,max=400"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user owner"`
}

type createStoreRequest struct {
	Name    string `json:"name"    validate:"required,min=20,max=60"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID int    `json:"ownerId" validate:"required,gt=0"`
}

type submitRatingRequest struct {
	StoreID int `json:"storeId" validate:"required,gt=0"`
	Rating  int `json:"rating"  validate:"required,min=1,max=5"`
}

// Response types. JSON field names are camelCase for compatibility with the
// existing web client.

type userResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// userWithStoreResponse is the admin users listing item; storeName and
// storeRating appear only for owners that have a store.
type userWithStoreResponse struct {
	userResponse
	StoreName   *string  `json:"storeName,omitempty"`
	StoreRating *float64 `json:"storeRating,omitempty"`
}

// storeResponse carries the derived aggregates. userRating is omitted
// entirely when the viewer has not rated the store; 0 never appears since
// the domain floor is 1.
type storeResponse struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       int       `json:"ownerId"`
	CreatedAt     time.Time `json:"createdAt"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	UserRating    *int      `json:"userRating,omitempty"`
}

type ratingResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	StoreID   int       `json:"storeId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// ownerRatingResponse enriches a rating with the rater's identity for the
// owner dashboard.
type ownerRatingResponse struct {
	ratingResponse
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

type statisticsResponse struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

type messageResponse struct {
	Message string `json:"message"`
}
