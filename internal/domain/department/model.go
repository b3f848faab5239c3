package department

import (
	"github.com/medimind/emr-admin/internal/platform/fhir"
)

// DepartmentFormValues is the flat DTO the admin UI edits.
type DepartmentFormValues struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	NameKa   string `json:"nameKa,omitempty"`
	ParentID string `json:"parentId,omitempty"`
	Active   bool   `json:"active"`
}

// DepartmentRow is the list projection, with the parent name resolved from
// the same fetched department list.
type DepartmentRow struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	NameKa     string `json:"nameKa,omitempty"`
	ParentID   string `json:"parentId,omitempty"`
	ParentName string `json:"parentName,omitempty"`
	Active     bool   `json:"active"`
}

// ParentOption is one entry of the parent-department select control.
type ParentOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ApplyFormValues writes the form fields into an Organization, preserving
// any extensions and identifiers the form does not manage.
func ApplyFormValues(org *fhir.Organization, v DepartmentFormValues) {
	org.ResourceType = "Organization"
	org.Name = v.Name
	org.Identifier = fhir.SetIdentifierValue(org.Identifier, fhir.IdentDepartmentID, v.Code)
	if v.NameKa != "" {
		org.Extension = fhir.SetExtensionValue(org.Extension, fhir.ExtNameKa, v.NameKa)
	}
	active := v.Active
	org.Active = &active
	if v.ParentID != "" {
		org.PartOf = &fhir.Reference{Reference: fhir.FormatReference("Organization", v.ParentID)}
	} else {
		org.PartOf = nil
	}
}

// ToRow projects one Organization into a table row. Parent name resolution
// happens in a second pass over the fetched list, not here.
func ToRow(org fhir.Organization) DepartmentRow {
	row := DepartmentRow{
		ID:     org.ID,
		Code:   fhir.GetIdentifierValue(org.Identifier, fhir.IdentDepartmentID),
		Name:   org.Name,
		NameKa: fhir.GetExtensionValue(org.Extension, fhir.ExtNameKa),
		Active: org.Active == nil || *org.Active,
	}
	if org.PartOf != nil {
		row.ParentID = fhir.ReferenceID(org.PartOf.Reference)
	}
	return row
}
