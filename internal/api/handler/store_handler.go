package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// StoreHandler handles the authenticated store browsing endpoint.
type StoreHandler struct {
	stores ports.StoreService
}

func NewStoreHandler(stores ports.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// List returns all stores, optionally filtered by ?search=. The search term
// matches store names first; only when no name matches does it fall back to
// addresses. Normal users additionally see their own rating per store.
//
// @Summary      Browse stores
// @Tags         stores
// @Produce      json
// @Param        search  query     string  false  "Name (or, as fallback, address) substring"
// @Success      200     {array}   storeResponse
// @Failure      401     {object}  map[string]string
// @Router       /api/stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	viewer, err := currentUser(c)
	if err != nil {
		return err
	}

	stores, err := h.stores.ListStores(c.Request().Context(), c.QueryParam("search"), viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStoreResponses(stores))
}
