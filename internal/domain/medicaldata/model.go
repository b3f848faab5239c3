package medicaldata

import (
	"strconv"

	"github.com/medimind/emr-admin/internal/platform/fhir"
)

// MedicalDataFormValues is the flat DTO for one observation-definition row
// (a chartable medical data item such as temperature or blood pressure).
type MedicalDataFormValues struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	NameKa    string `json:"nameKa,omitempty"`
	Category  string `json:"category,omitempty"`
	Unit      string `json:"unit,omitempty"`
	SortOrder int    `json:"sortOrder,omitempty"`
	Active    bool   `json:"active"`
}

// MedicalDataRow is the list projection.
type MedicalDataRow struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	NameKa    string `json:"nameKa,omitempty"`
	Category  string `json:"category,omitempty"`
	Unit      string `json:"unit,omitempty"`
	SortOrder int    `json:"sortOrder,omitempty"`
	Active    bool   `json:"active"`
}

// ApplyFormValues writes the form fields into an ObservationDefinition.
// Zero-valued optional fields (empty NameKa or Category, SortOrder 0) are
// treated as "not provided" and leave any existing extension in place; an
// update cannot clear an extension back to unset.
func ApplyFormValues(od *fhir.ObservationDefinition, v MedicalDataFormValues) {
	od.ResourceType = "ObservationDefinition"
	od.Identifier = fhir.SetIdentifierValue(od.Identifier, fhir.IdentMedicalDataCode, v.Code)
	if od.Code == nil {
		od.Code = &fhir.CodeableConcept{}
	}
	od.Code.Text = v.Name
	if v.NameKa != "" {
		od.Extension = fhir.SetExtensionValue(od.Extension, fhir.ExtNameKa, v.NameKa)
	}
	if v.Category != "" {
		od.Extension = fhir.SetExtensionValue(od.Extension, fhir.ExtMedicalDataCategory, v.Category)
	}
	if v.SortOrder != 0 {
		od.Extension = fhir.SetExtensionValue(od.Extension, fhir.ExtSortOrder, strconv.Itoa(v.SortOrder))
	}
	if v.Unit != "" {
		od.QuantitativeDetails = &fhir.QuantitativeDetails{
			Unit: &fhir.CodeableConcept{Text: v.Unit},
		}
	}
	if v.Active {
		od.Status = "active"
	} else {
		od.Status = "retired"
	}
}

func ToRow(od fhir.ObservationDefinition) MedicalDataRow {
	row := MedicalDataRow{
		ID:       od.ID,
		Code:     fhir.GetIdentifierValue(od.Identifier, fhir.IdentMedicalDataCode),
		NameKa:   fhir.GetExtensionValue(od.Extension, fhir.ExtNameKa),
		Category: fhir.GetExtensionValue(od.Extension, fhir.ExtMedicalDataCategory),
		Active:   od.Status != "retired",
	}
	if od.Code != nil {
		row.Name = od.Code.Text
	}
	if od.QuantitativeDetails != nil && od.QuantitativeDetails.Unit != nil {
		row.Unit = od.QuantitativeDetails.Unit.Text
	}
	if s := fhir.GetExtensionValue(od.Extension, fhir.ExtSortOrder); s != "" {
		row.SortOrder, _ = strconv.Atoi(s)
	}
	return row
}
