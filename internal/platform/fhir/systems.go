package fhir

// Canonical URLs of the singleton CodeSystem containers holding the
// hospital's reference data.
const (
	CodeSystemAdminRoutes   = "http://medimind.ge/CodeSystem/admin-routes"
	CodeSystemUnits         = "http://medimind.ge/CodeSystem/measurement-units"
	CodeSystemOperatorTypes = "http://medimind.ge/CodeSystem/operator-types"
)
