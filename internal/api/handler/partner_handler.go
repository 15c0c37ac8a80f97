package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

type PartnerHandler struct {
	partnerService ports.PartnerService
}

func NewPartnerHandler(partnerService ports.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

type createPartnerRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	MitraName string `json:"mitra_name" validate:"required,min=2,max=255"`
	Address   string `json:"address" validate:"required"`
	Contact   string `json:"contact" validate:"omitempty,max=50"`
	Status    string `json:"status" validate:"omitempty,oneof=pending active inactive"`
}

type updatePartnerRequest struct {
	MitraName *string `json:"mitra_name" validate:"omitnil,min=2,max=255"`
	Address   *string `json:"address" validate:"omitnil,min=1"`
	Contact   *string `json:"contact" validate:"omitnil,max=50"`
	Status    *string `json:"status" validate:"omitnil,oneof=pending active inactive"`
}

type attachStaffRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type listPartnersData struct {
	Partners   []*domain.Partner `json:"partners"`
	Pagination ports.Pagination  `json:"pagination"`
}

type partnerData struct {
	Partner *domain.Partner `json:"partner"`
}

type staffData struct {
	User domain.PublicUser `json:"user"`
}

// List returns a filtered, sorted page of live partners.
//
// @Summary      List partners
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"
// @Param        limit       query     int     false  "Items per page"
// @Param        search      query     string  false  "Matches mitra_name or address"
// @Param        status      query     string  false  "pending, active or inactive"
// @Param        sort_by     query     string  false  "created_at, updated_at, mitra_name or status"
// @Param        sort_order  query     string  false  "ASC or DESC"
// @Success      200         {object}  successResponse{data=listPartnersData}
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /partners [get]
func (h *PartnerHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.partnerService.List(c.Request().Context(), ports.ListPartnersInput{
		Search:    c.QueryParam("search"),
		Status:    c.QueryParam("status"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", listPartnersData{Partners: res.Items, Pagination: res.Pagination})
}

// Get returns a single live partner with its owner.
//
// @Summary      Get partner
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Partner ID"
// @Success      200  {object}  successResponse{data=partnerData}
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /partners/{id} [get]
func (h *PartnerHandler) Get(c echo.Context) error {
	id, err := pathUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	partner, err := h.partnerService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", partnerData{Partner: partner})
}

// Create registers a partner and promotes its owner to mitra.
//
// @Summary      Create partner
// @Tags         partners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPartnerRequest  true  "Partner"
// @Success      201   {object}  successResponse{data=partnerData}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /partners [post]
func (h *PartnerHandler) Create(c echo.Context) error {
	var req createPartnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	partner, err := h.partnerService.Create(c.Request().Context(), ports.CreatePartnerInput{
		UserID:    req.UserID,
		MitraName: req.MitraName,
		Address:   req.Address,
		Contact:   req.Contact,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Partner created successfully", partnerData{Partner: partner})
}

// Update changes the mutable fields of a partner.
//
// @Summary      Update partner
// @Tags         partners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Partner ID"
// @Param        body  body      updatePartnerRequest  true  "Fields to change"
// @Success      200   {object}  successResponse{data=partnerData}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /partners/{id} [put]
func (h *PartnerHandler) Update(c echo.Context) error {
	id, err := pathUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req updatePartnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := domain.PartnerUpdate{
		MitraName: req.MitraName,
		Address:   req.Address,
		Contact:   req.Contact,
	}
	if req.Status != nil {
		st := domain.PartnerStatus(*req.Status)
		update.Status = &st
	}

	partner, err := h.partnerService.Update(c.Request().Context(), id, update)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Partner updated successfully", partnerData{Partner: partner})
}

// Delete soft-deletes a partner and demotes its owner to customer.
//
// @Summary      Delete partner
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Partner ID"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /partners/{id} [delete]
func (h *PartnerHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	if err := h.partnerService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Partner deleted successfully", nil)
}

// AttachStaff makes a customer a staff member of the partner.
//
// @Summary      Attach staff
// @Tags         partners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Partner ID"
// @Param        body  body      attachStaffRequest  true  "User to attach"
// @Success      200   {object}  successResponse{data=staffData}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /partners/{id}/staff [post]
func (h *PartnerHandler) AttachStaff(c echo.Context) error {
	partnerID, err := pathUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req attachStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.partnerService.AttachStaff(c.Request().Context(), partnerID, req.UserID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Staff attached successfully", staffData{User: user.Public()})
}

// DetachStaff returns a staff member of the partner to customer.
//
// @Summary      Detach staff
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Partner ID"
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  successResponse{data=staffData}
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /partners/{id}/staff/{user_id} [delete]
func (h *PartnerHandler) DetachStaff(c echo.Context) error {
	partnerID, err := pathUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c.Param("user_id"), "user_id")
	if err != nil {
		return err
	}

	user, err := h.partnerService.DetachStaff(c.Request().Context(), partnerID, userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Staff detached successfully", staffData{User: user.Public()})
}

// queryInt parses an optional positive integer query parameter. Zero means unset.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, newValidationError(name, name+" must be a positive integer")
	}
	return n, nil
}
