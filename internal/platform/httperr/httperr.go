// Package httperr maps the gateway's error taxonomy to HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medimind/emr-admin/internal/platform/fhir"
)

// From converts a service error into an echo HTTPError. Unrecognized errors
// map to 500.
func From(err error) *echo.HTTPError {
	switch {
	case fhir.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case fhir.IsDuplicateCode(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case fhir.IsVersionConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case isPartialSave(err):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	case isNetwork(err):
		return echo.NewHTTPError(http.StatusBadGateway, "resource server unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func isNetwork(err error) bool {
	var ne *fhir.NetworkError
	return errors.As(err, &ne)
}

func isPartialSave(err error) bool {
	var pe *fhir.PartialSaveError
	return errors.As(err, &pe)
}
