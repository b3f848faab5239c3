package visit

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
	api.GET("/visits", h.List)
	api.GET("/visits/:id", h.Detail)
	api.POST("/patients/:patientId/visits", h.Create)
	api.PUT("/visits/:id", h.Save)
}

func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		PersonalID: c.QueryParam("personalId"),
		Name:       c.QueryParam("name"),
		From:       c.QueryParam("from"),
		To:         c.QueryParam("to"),
	}
	rows, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return httperr.From(err)
	}
	// The resource server does not support offset paging on this search, so
	// the page is cut from the fetched list.
	page := pagination.FromContext(c)
	start, end := page.Slice(len(rows))
	return c.JSON(http.StatusOK, pagination.NewResponse(rows[start:end], len(rows), page.Limit, page.Offset))
}

func (h *Handler) Detail(c echo.Context) error {
	detail, err := h.svc.GetDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) Create(c echo.Context) error {
	var req SaveVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	detail, err := h.svc.Create(c.Request().Context(), c.Param("patientId"), req)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, detail)
}

func (h *Handler) Save(c echo.Context) error {
	var req SaveVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	detail, err := h.svc.Save(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, detail)
}
