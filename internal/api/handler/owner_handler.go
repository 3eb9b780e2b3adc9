package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// OwnerHandler handles the store-owner dashboard. Routes are gated on
// RoleOwner by the router.
type OwnerHandler struct {
	stores ports.StoreService
}

func NewOwnerHandler(stores ports.StoreService) *OwnerHandler {
	return &OwnerHandler{stores: stores}
}

// Store returns the owner's store with its rating aggregates, or 404 when no
// store is assigned to them yet.
//
// @Summary      Own store
// @Tags         owner
// @Produce      json
// @Success      200  {object}  storeResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/owner/store [get]
func (h *OwnerHandler) Store(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.stores.OwnerStore(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, storeResponse{
		ID:            view.ID,
		Name:          view.Name,
		Email:         view.Email,
		Address:       view.Address,
		OwnerID:       view.OwnerID,
		CreatedAt:     view.CreatedAt,
		AverageRating: view.AverageRating,
		TotalRatings:  view.TotalRatings,
	})
}

// Ratings lists every rating on the owner's store with the rater's name and
// email.
//
// @Summary      Own store's ratings
// @Tags         owner
// @Produce      json
// @Success      200  {array}   ownerRatingResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/owner/ratings [get]
func (h *OwnerHandler) Ratings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	ratings, err := h.stores.OwnerRatings(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	resp := make([]ownerRatingResponse, 0, len(ratings))
	for _, r := range ratings {
		resp = append(resp, ownerRatingResponse{
			ratingResponse: ratingResponse{
				ID:        r.ID,
				UserID:    r.UserID,
				StoreID:   r.StoreID,
				Rating:    r.Value,
				CreatedAt: r.CreatedAt,
			},
			UserName:  r.UserName,
			UserEmail: r.UserEmail,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
