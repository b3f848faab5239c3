package department

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medimind/emr-admin/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/departments", h.List)
	api.GET("/departments/parent-options", h.ParentOptions)
	api.POST("/departments", h.Create)
	api.PUT("/departments/:id", h.Update)
	api.DELETE("/departments/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Name:            c.QueryParam("name"),
		Code:            c.QueryParam("code"),
		IncludeInactive: c.QueryParam("includeInactive") == "true",
	}
	rows, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) ParentOptions(c echo.Context) error {
	opts, err := h.svc.ParentOptions(c.Request().Context(), c.QueryParam("self"))
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) Create(c echo.Context) error {
	var v DepartmentFormValues
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
	var v DepartmentFormValues
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
