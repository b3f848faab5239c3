package coverage

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
	api.GET("/insurance-companies", h.ListCompanies)
	api.GET("/encounters/:id/coverages", h.ListForEncounter)
}

func (h *Handler) ListCompanies(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		return c.JSON(http.StatusOK, Companies)
	}
	filtered := make([]InsuranceCompany, 0, len(Companies))
	for _, company := range Companies {
		if company.Category == category {
			filtered = append(filtered, company)
		}
	}
	return c.JSON(http.StatusOK, filtered)
}

func (h *Handler) ListForEncounter(c echo.Context) error {
	patientID := c.QueryParam("patient")
	if patientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patient query parameter is required")
	}
	covs, err := h.svc.CoveragesForEncounter(c.Request().Context(), c.Param("id"), patientID)
	if err != nil {
		return httperr.From(err)
	}
	// Slot-positional, same contract as the visit detail payload.
	slots := make([]InsurerFields, MaxInsurers)
	for i := range covs {
		if o := covs[i].Order; o != nil && *o >= 1 && *o <= MaxInsurers {
			slots[*o-1] = FieldsFromCoverage(covs[i])
		}
	}
	return c.JSON(http.StatusOK, slots)
}
