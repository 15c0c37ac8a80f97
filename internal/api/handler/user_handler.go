package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userListItem struct {
	domain.PublicUser
	IsDeleted bool `json:"is_deleted"`
}

type listUsersData struct {
	Users      []userListItem   `json:"users"`
	Pagination ports.Pagination `json:"pagination"`
}

// List returns a page of users, deactivated accounts included.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  successResponse{data=listUsersData}
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.userService.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", listUsersData{Users: toUserListItems(res.Items), Pagination: res.Pagination})
}

func toUserListItems(users []*domain.User) []userListItem {
	out := make([]userListItem, 0, len(users))
	for _, u := range users {
		out = append(out, userListItem{PublicUser: u.Public(), IsDeleted: !u.Active()})
	}
	return out
}
