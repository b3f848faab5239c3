package coverage

import (
	"strconv"

	"github.com/medimind/emr-admin/internal/platform/fhir"
)

// InsurerFields is one insurer field-group from the visit form. An empty
// InsuranceCompany marks the slot as unused; nothing is persisted for it.
type InsurerFields struct {
	InsuranceCompany string   `json:"insuranceCompany"`
	InsuranceType    string   `json:"insuranceType,omitempty"`
	PolicyNumber     string   `json:"policyNumber,omitempty"`
	ReferralNumber   string   `json:"referralNumber,omitempty"`
	IssueDate        string   `json:"issueDate,omitempty"`
	ExpirationDate   string   `json:"expirationDate,omitempty"`
	CopayPercent     *float64 `json:"copayPercent,omitempty"`
}

// Empty reports whether this insurer slot is unused.
func (f InsurerFields) Empty() bool {
	return f.InsuranceCompany == ""
}

// applyFields writes one insurer field-group into a Coverage. The Coverage
// is linked to its Encounter through the encounter-id extension because the
// profile has no encounter search parameter.
func applyFields(cov *fhir.Coverage, encounterID, patientID string, fields InsurerFields, order int) {
	cov.ResourceType = "Coverage"
	cov.Status = "active"
	o := order
	cov.Order = &o
	cov.Beneficiary = &fhir.Reference{Reference: fhir.FormatReference("Patient", patientID)}
	cov.SubscriberID = fields.PolicyNumber

	payor := fhir.Reference{Reference: fhir.FormatReference("Organization", fields.InsuranceCompany)}
	if company, ok := CompanyByID(fields.InsuranceCompany); ok {
		payor.Display = company.NameKa
	}
	cov.Payor = []fhir.Reference{payor}

	if fields.InsuranceType != "" {
		cov.Type = &fhir.CodeableConcept{Coding: []fhir.Coding{{Code: fields.InsuranceType}}}
	}
	if fields.IssueDate != "" || fields.ExpirationDate != "" {
		cov.Period = &fhir.Period{Start: fields.IssueDate, End: fields.ExpirationDate}
	}
	if fields.CopayPercent != nil {
		cov.CostToBeneficiary = []fhir.CoverageCost{{
			ValueQuantity: &fhir.Quantity{Value: fields.CopayPercent, Unit: "%"},
		}}
	}
	if fields.ReferralNumber != "" {
		cov.Extension = fhir.SetExtensionValue(cov.Extension, fhir.ExtReferralNumber, fields.ReferralNumber)
	}
	cov.Extension = fhir.SetExtensionValue(cov.Extension, fhir.ExtEncounterID, encounterID)
}

// FieldsFromCoverage reads an insurer field-group back out of a Coverage.
func FieldsFromCoverage(cov fhir.Coverage) InsurerFields {
	f := InsurerFields{
		PolicyNumber:   cov.SubscriberID,
		ReferralNumber: fhir.GetExtensionValue(cov.Extension, fhir.ExtReferralNumber),
	}
	if len(cov.Payor) > 0 {
		f.InsuranceCompany = fhir.ReferenceID(cov.Payor[0].Reference)
	}
	if cov.Type != nil && len(cov.Type.Coding) > 0 {
		f.InsuranceType = cov.Type.Coding[0].Code
	}
	if cov.Period != nil {
		f.IssueDate = cov.Period.Start
		f.ExpirationDate = cov.Period.End
	}
	if len(cov.CostToBeneficiary) > 0 && cov.CostToBeneficiary[0].ValueQuantity != nil {
		f.CopayPercent = cov.CostToBeneficiary[0].ValueQuantity.Value
	}
	return f
}

// coverageSlot is used in error reporting ("insurer 2").
func coverageSlot(order int) string {
	return "insurer " + strconv.Itoa(order)
}
