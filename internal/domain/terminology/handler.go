package terminology

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
	api.GET("/units", h.ListUnits)
	api.POST("/units", h.CreateUnit)
	api.PUT("/units/:code", h.UpdateUnit)
	api.DELETE("/units/:code", h.DeleteUnit)

	api.GET("/admin-routes", h.ListAdminRoutes)
	api.POST("/admin-routes", h.CreateAdminRoute)
	api.PUT("/admin-routes/:code", h.UpdateAdminRoute)
	api.DELETE("/admin-routes/:code", h.DeleteAdminRoute)

	api.GET("/operator-types", h.ListOperatorTypes)
	api.POST("/operator-types", h.CreateOperatorType)
	api.PUT("/operator-types/:code", h.UpdateOperatorType)
	api.DELETE("/operator-types/:code", h.DeleteOperatorType)
}

func includeInactive(c echo.Context) bool {
	return c.QueryParam("includeInactive") == "true"
}

// purge=true switches delete from the default inactive flag to removal from
// the container array (admin cleanup only).
func purge(c echo.Context) bool {
	return c.QueryParam("purge") == "true"
}

// -- Units --

func (h *Handler) ListUnits(c echo.Context) error {
	items, err := h.svc.ListUnits(c.Request().Context(), includeInactive(c))
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateUnit(c echo.Context) error {
	var v UnitFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateUnit(c.Request().Context(), v); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateUnit(c echo.Context) error {
	var v UnitFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateUnit(c.Request().Context(), c.Param("code"), v); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) DeleteUnit(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")
	var err error
	if purge(c) {
		err = h.svc.PurgeUnit(ctx, code)
	} else {
		err = h.svc.DeactivateUnit(ctx, code)
	}
	if err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Administration routes --

func (h *Handler) ListAdminRoutes(c echo.Context) error {
	items, err := h.svc.ListAdminRoutes(c.Request().Context(), includeInactive(c))
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateAdminRoute(c echo.Context) error {
	var v AdminRouteFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateAdminRoute(c.Request().Context(), v); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateAdminRoute(c echo.Context) error {
	var v AdminRouteFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateAdminRoute(c.Request().Context(), c.Param("code"), v); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) DeleteAdminRoute(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")
	var err error
	if purge(c) {
		err = h.svc.PurgeAdminRoute(ctx, code)
	} else {
		err = h.svc.DeactivateAdminRoute(ctx, code)
	}
	if err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Operator types --

func (h *Handler) ListOperatorTypes(c echo.Context) error {
	items, err := h.svc.ListOperatorTypes(c.Request().Context(), includeInactive(c))
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateOperatorType(c echo.Context) error {
	var v OperatorTypeFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateOperatorType(c.Request().Context(), v); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateOperatorType(c echo.Context) error {
	var v OperatorTypeFormValues
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateOperatorType(c.Request().Context(), c.Param("code"), v); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) DeleteOperatorType(c echo.Context) error {
	ctx := c.Request().Context()
	code := c.Param("code")
	var err error
	if purge(c) {
		err = h.svc.PurgeOperatorType(ctx, code)
	} else {
		err = h.svc.DeactivateOperatorType(ctx, code)
	}
	if err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
