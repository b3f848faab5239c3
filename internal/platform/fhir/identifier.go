package fhir

// Identifier systems used as natural keys inside generic resources.
const (
	IdentPersonalID             = "http://medimind.ge/identifiers/personal-id"
	IdentVisitRegistration      = "http://medimind.ge/identifiers/visit-registration"
	IdentAmbulatoryRegistration = "http://medimind.ge/identifiers/ambulatory-registration"
	IdentDepartmentID           = "http://medimind.ge/identifiers/department-id"
	IdentCashRegisterID         = "http://medimind.ge/identifiers/cash-register-id"
	IdentMedicalDataCode        = "http://medimind.ge/identifiers/medical-data-code"
)

// GetIdentifierValue returns the value of the first identifier whose system
// matches, else "".
func GetIdentifierValue(ids []Identifier, system string) string {
	for _, id := range ids {
		if id.System == system {
			return id.Value
		}
	}
	return ""
}

// SetIdentifierValue overwrites the first identifier with this system in
// place, or appends a new one.
func SetIdentifierValue(ids []Identifier, system, value string) []Identifier {
	for i := range ids {
		if ids[i].System == system {
			ids[i].Value = value
			return ids
		}
	}
	return append(ids, Identifier{System: system, Value: value})
}
