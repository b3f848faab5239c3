package medicaldata

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medimind/emr-admin/internal/platform/httperr"
	"github.com/medimind/emr-admin/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medical-data", h.List)
	api.POST("/medical-data", h.Create)
	api.PUT("/medical-data/:id", h.Update)
	api.DELETE("/medical-data/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Name:            c.QueryParam("name"),
		Category:        c.QueryParam("category"),
		IncludeInactive: c.QueryParam("includeInactive") == "true",
	}
	rows, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return httperr.From(err)
	}
	// Category and name are filtered client-side, so paging happens here too.
	page := pagination.FromContext(c)
	start, end := page.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[start:end], len(rows), page.Limit, page.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var v MedicalDataFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	row, err := h.svc.Create(c.Request().Context(), v)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *Handler) Update(c echo.Context) error {
	var v MedicalDataFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	row, err := h.svc.Update(c.Request().Context(), c.Param("id"), v)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *Handler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	var err error
	if c.QueryParam("purge") == "true" {
		err = h.svc.Delete(ctx, id)
	} else {
		err = h.svc.Deactivate(ctx, id)
	}
	if err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
