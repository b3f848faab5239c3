package fhirmodels

// Common FHIR value set constants used across the application.

// EncounterStatus values per FHIR R4.
const (
	EncounterStatusPlanned        = "planned"
	EncounterStatusArrived        = "arrived"
	EncounterStatusInProgress     = "in-progress"
	EncounterStatusFinished       = "finished"
	EncounterStatusCancelled      = "cancelled"
	EncounterStatusEnteredInError = "entered-in-error"
)

// EncounterClass codes per FHIR R4 v3-ActCode.
const (
	EncounterClassAmbulatory = "AMB"
	EncounterClassEmergency  = "EMER"
	EncounterClassInpatient  = "IMP"
)

// ActCodeSystem is the coding system for encounter class.
const ActCodeSystem = "http://terminology.hl7.org/CodeSystem/v3-ActCode"

// AdministrativeGender codes.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// Designation languages used for localized concept display names.
const (
	LangGeorgian = "ka"
	LangEnglish  = "en"
	LangRussian  = "ru"
)
