package fhir

// Extension URLs forming the wire contract with the existing resource store.
// The exact strings matter: the front-end and historical data both use them.
const (
	ExtEducation     = "http://medimind.ge/fhir/StructureDefinition/education"
	ExtFamilyStatus  = "http://medimind.ge/fhir/StructureDefinition/family-status"
	ExtEmployment    = "http://medimind.ge/fhir/StructureDefinition/employment"
	ExtStatusCode    = "http://medimind.ge/fhir/StructureDefinition/status-code"
	ExtHospitalType  = "http://medimind.ge/fhir/StructureDefinition/hospital-type"
	ExtComment       = "http://medimind.ge/fhir/StructureDefinition/comment"
	ExtDepartment    = "http://medimind.ge/fhir/StructureDefinition/department"
	ExtAdmissionType = "http://medimind.ge/fhir/StructureDefinition/admission-type"
	ExtDischargeType = "http://medimind.ge/fhir/StructureDefinition/discharge-type"
	ExtAttendingDoc  = "http://medimind.ge/fhir/StructureDefinition/attending-doctor"
	ExtRoom          = "http://medimind.ge/fhir/StructureDefinition/room"
	ExtBed           = "http://medimind.ge/fhir/StructureDefinition/bed"
	ExtGuarantee     = "http://medimind.ge/fhir/StructureDefinition/guarantee"
	ExtReferrer      = "http://medimind.ge/fhir/StructureDefinition/referrer"
	ExtVisitPurpose  = "http://medimind.ge/fhir/StructureDefinition/visit-purpose"
	ExtStatusType    = "http://medimind.ge/fhir/StructureDefinition/status-type"
	ExtRegion        = "http://medimind.ge/fhir/StructureDefinition/region"
	ExtDistrict      = "http://medimind.ge/fhir/StructureDefinition/district"
	ExtCity          = "http://medimind.ge/fhir/StructureDefinition/city"
	ExtAddress       = "http://medimind.ge/fhir/StructureDefinition/address"
	ExtWorkplace     = "http://medimind.ge/fhir/StructureDefinition/workplace"

	ExtNameKa              = "http://medimind.ge/extensions/name-ka"
	ExtBankCode            = "http://medimind.ge/extensions/bank-code"
	ExtCashRegisterType    = "http://medimind.ge/extensions/cash-register-type"
	ExtMedicalDataCategory = "http://medimind.ge/extensions/medical-data-category"
	ExtSortOrder           = "http://medimind.ge/extensions/sort-order"
	ExtReferralNumber      = "http://medimind.ge/extensions/referral-number"
	ExtEncounterID         = "http://medimind.ge/extensions/encounter-id"
)

// GetExtensionValue returns the value of the first extension whose URL
// matches. String values win over codeable concepts; absent data degrades to
// "" so read-side mapping never fails.
func GetExtensionValue(exts []Extension, url string) string {
	for _, ext := range exts {
		if ext.URL != url {
			continue
		}
		if ext.ValueString != "" {
			return ext.ValueString
		}
		if ext.ValueCode != "" {
			return ext.ValueCode
		}
		if ext.ValueCodeableConcept != nil && len(ext.ValueCodeableConcept.Coding) > 0 {
			return ext.ValueCodeableConcept.Coding[0].Code
		}
		return ""
	}
	return ""
}

// SetExtensionValue overwrites the first extension with this URL in place,
// or appends a new one. Array order is otherwise preserved, so writing the
// same URL twice can never yield two entries.
func SetExtensionValue(exts []Extension, url, value string) []Extension {
	for i := range exts {
		if exts[i].URL == url {
			exts[i].ValueString = value
			exts[i].ValueCode = ""
			exts[i].ValueCodeableConcept = nil
			return exts
		}
	}
	return append(exts, Extension{URL: url, ValueString: value})
}
