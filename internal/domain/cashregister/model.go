package cashregister

import (
	"github.com/medimind/emr-admin/internal/platform/fhir"
)

// CashRegisterFormValues is the flat DTO the admin UI edits.
type CashRegisterFormValues struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	BankCode string `json:"bankCode,omitempty"`
	Type     string `json:"type,omitempty"`
	Active   bool   `json:"active"`
}

// CashRegisterRow is the list projection.
type CashRegisterRow struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	BankCode string `json:"bankCode,omitempty"`
	Type     string `json:"type,omitempty"`
	Active   bool   `json:"active"`
}

// ApplyFormValues writes the form fields into a Location. The soft-delete
// state rides on Location.status (active/inactive).
func ApplyFormValues(loc *fhir.Location, v CashRegisterFormValues) {
	loc.ResourceType = "Location"
	loc.Name = v.Name
	loc.Identifier = fhir.SetIdentifierValue(loc.Identifier, fhir.IdentCashRegisterID, v.Code)
	if v.BankCode != "" {
		loc.Extension = fhir.SetExtensionValue(loc.Extension, fhir.ExtBankCode, v.BankCode)
	}
	if v.Type != "" {
		loc.Extension = fhir.SetExtensionValue(loc.Extension, fhir.ExtCashRegisterType, v.Type)
	}
	if v.Active {
		loc.Status = "active"
	} else {
		loc.Status = "inactive"
	}
}

func ToRow(loc fhir.Location) CashRegisterRow {
	return CashRegisterRow{
		ID:       loc.ID,
		Code:     fhir.GetIdentifierValue(loc.Identifier, fhir.IdentCashRegisterID),
		Name:     loc.Name,
		BankCode: fhir.GetExtensionValue(loc.Extension, fhir.ExtBankCode),
		Type:     fhir.GetExtensionValue(loc.Extension, fhir.ExtCashRegisterType),
		Active:   loc.Status != "inactive",
	}
}
