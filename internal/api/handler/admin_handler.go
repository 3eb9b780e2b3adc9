package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// AdminHandler handles the admin dashboard: statistics plus user and store
// management. All routes are gated on RoleAdmin by the router.
type AdminHandler struct {
	admin  ports.AdminService
	stores ports.StoreService
}

func NewAdminHandler(admin ports.AdminService, stores ports.StoreService) *AdminHandler {
	return &AdminHandler{admin: admin, stores: stores}
}

// Statistics returns total users, stores and ratings.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  statisticsResponse
// @Router       /api/admin/statistics [get]
func (h *AdminHandler) Statistics(c echo.Context) error {
	stats, err := h.admin.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statisticsResponse{
		TotalUsers:   stats.TotalUsers,
		TotalStores:  stats.TotalStores,
		TotalRatings: stats.TotalRatings,
	})
}

// ListUsers returns every user, passwords stripped, owners enriched with
// their store's name and average rating.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  userWithStoreResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userWithStoreResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userWithStoreResponse{
			userResponse: userResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Address:   u.Address,
				Role:      string(u.Role),
				CreatedAt: u.CreatedAt,
			},
			StoreName:   u.StoreName,
			StoreRating: u.StoreRating,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateUser creates an account with an admin-chosen role.
//
// @Summary      Create user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleUser
	}

	user, err := h.admin.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// ListStores returns every store with averageRating and totalRatings.
//
// @Summary      List stores
// @Tags         admin
// @Produce      json
// @Success      200  {array}  storeResponse
// @Router       /api/admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	stores, err := h.stores.ListStores(c.Request().Context(), "", nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStoreResponses(stores))
}

// CreateStore creates a store for an existing owner.
//
// @Summary      Create store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  storeResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/stores [post]
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	store, err := h.stores.CreateStore(c.Request().Context(), ports.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, storeResponse{
		ID:        store.ID,
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
	})
}

func toStoreResponses(views []ports.StoreView) []storeResponse {
	resp := make([]storeResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, storeResponse{
			ID:            v.ID,
			Name:          v.Name,
			Email:         v.Email,
			Address:       v.Address,
			OwnerID:       v.OwnerID,
			CreatedAt:     v.CreatedAt,
			AverageRating: v.AverageRating,
			TotalRatings:  v.TotalRatings,
			UserRating:    v.UserRating,
		})
	}
	return resp
}
