package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratehub/store-ratings-api/internal/api/middleware"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// currentUser extracts the identity injected by the Session middleware. Its
// presence proves the middleware ran; a gated route reached without it is a
// wiring bug surfaced as 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrNotAuthenticated.Error())
	}
	return user, nil
}

func sessionID(c echo.Context) string {
	sid, _ := c.Get(middleware.ContextSessionID).(string)
	return sid
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
