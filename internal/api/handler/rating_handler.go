package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/api/metrics"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// RatingHandler handles rating submission. The route is gated on RoleUser by
// the router; admins and owners never reach Submit.
type RatingHandler struct {
	ratings ports.RatingService
}

func NewRatingHandler(ratings ports.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Submit records or overwrites the caller's rating for a store. A first
// submission answers 201, an overwrite answers 200.
//
// @Summary      Submit or update a rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        body  body      submitRatingRequest  true  "Rating"
// @Success      200   {object}  ratingResponse
// @Success      201   {object}  ratingResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.ratings.Submit(c.Request().Context(), ports.SubmitRatingInput{
		UserID:  user.ID,
		StoreID: req.StoreID,
		Value:   req.Rating,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	outcome := "updated"
	if result.Created {
		status = http.StatusCreated
		outcome = "created"
	}
	metrics.RatingsSubmittedTotal.WithLabelValues(outcome).Inc()

	r := result.Rating
	return c.JSON(status, ratingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Value,
		CreatedAt: r.CreatedAt,
	})
}
