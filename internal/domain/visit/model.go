package visit

import (
	"github.com/medimind/emr-admin/internal/domain/coverage"
	"github.com/medimind/emr-admin/pkg/fhirmodels"
)

// AdmissionType is the hospital-internal admission code carried on the visit
// form. The FHIR encounter class is its wire encoding.
type AdmissionType string

const (
	AdmissionStationary AdmissionType = "1"
	AdmissionEmergency  AdmissionType = "2"
	AdmissionAmbulatory AdmissionType = "3"
)

// classToAdmission and admissionToClass form one canonical bijection used in
// both mapping directions.
var classToAdmission = map[string]AdmissionType{
	fhirmodels.EncounterClassInpatient:  AdmissionStationary,
	fhirmodels.EncounterClassEmergency:  AdmissionEmergency,
	fhirmodels.EncounterClassAmbulatory: AdmissionAmbulatory,
}

var admissionToClass = map[AdmissionType]string{
	AdmissionStationary: fhirmodels.EncounterClassInpatient,
	AdmissionEmergency:  fhirmodels.EncounterClassEmergency,
	AdmissionAmbulatory: fhirmodels.EncounterClassAmbulatory,
}

// AdmissionFromClass maps a FHIR encounter class code to the internal
// admission code.
func AdmissionFromClass(classCode string) (AdmissionType, bool) {
	a, ok := classToAdmission[classCode]
	return a, ok
}

// ClassFromAdmission is the inverse of AdmissionFromClass.
func ClassFromAdmission(a AdmissionType) (string, bool) {
	c, ok := admissionToClass[a]
	return c, ok
}

// VisitFormValues is the flat edit model for one visit. Pointer fields use
// nil for "not managed by this form": a nil field is skipped on write so an
// extension another screen owns is never cleared by accident.
type VisitFormValues struct {
	VisitDate     string        `json:"visitDate,omitempty"`
	DischargeDate string        `json:"dischargeDate,omitempty"`
	AdmissionType AdmissionType `json:"admissionType,omitempty"`

	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	AmbulatoryNumber   *string `json:"ambulatoryNumber,omitempty"`

	Department      *string `json:"department,omitempty"`
	AttendingDoctor *string `json:"attendingDoctor,omitempty"`
	Room            *string `json:"room,omitempty"`
	Bed             *string `json:"bed,omitempty"`
	Guarantee       *string `json:"guarantee,omitempty"`
	Referrer        *string `json:"referrer,omitempty"`
	VisitPurpose    *string `json:"visitPurpose,omitempty"`
	HospitalType    *string `json:"hospitalType,omitempty"`
	DischargeType   *string `json:"dischargeType,omitempty"`
	StatusCode      *string `json:"statusCode,omitempty"`
	StatusType      *string `json:"statusType,omitempty"`
	Comment         *string `json:"comment,omitempty"`
}

// PatientDemographics is the read-only patient block shown next to the visit
// form. Address fields come from the patient's first address entry,
// education, family status and employment from patient-level extensions.
type PatientDemographics struct {
	PatientID    string `json:"patientId"`
	PersonalID   string `json:"personalId,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Region       string `json:"region,omitempty"`
	District     string `json:"district,omitempty"`
	City         string `json:"city,omitempty"`
	AddressLine  string `json:"addressLine,omitempty"`
	Education    string `json:"education,omitempty"`
	FamilyStatus string `json:"familyStatus,omitempty"`
	Employment   string `json:"employment,omitempty"`
	Workplace    string `json:"workplace,omitempty"`
}

// VisitTableRow is one row of the visit search table. Financial columns are
// zero until charge aggregation lands.
type VisitTableRow struct {
	EncounterID        string  `json:"encounterId"`
	PatientID          string  `json:"patientId,omitempty"`
	PersonalID         string  `json:"personalId,omitempty"`
	FirstName          string  `json:"firstName,omitempty"`
	LastName           string  `json:"lastName,omitempty"`
	VisitDate          string  `json:"visitDate,omitempty"`
	DischargeDate      string  `json:"dischargeDate,omitempty"`
	RegistrationNumber string  `json:"registrationNumber,omitempty"`
	TotalCharged       float64 `json:"totalCharged"`
	TotalPaid          float64 `json:"totalPaid"`
	Balance            float64 `json:"balance"`
}

// VisitDetail is the full detail-view payload: the editable form values,
// the patient block, the insurer slots and the position of this visit in the
// patient's history. Insurers always has coverage.MaxInsurers entries and is
// slot-positional (index i is order i+1, empty slot means unused), so the
// payload can be resubmitted to Save without renumbering anyone's order.
type VisitDetail struct {
	EncounterID string                   `json:"encounterId"`
	Form        VisitFormValues          `json:"form"`
	Patient     PatientDemographics      `json:"patient"`
	Insurers    []coverage.InsurerFields `json:"insurers"`
	VisitCount  int                      `json:"visitCount"`
	TotalVisits int                      `json:"totalVisits"`
}

// SaveVisitRequest is the write payload for one visit save: the encounter
// form plus up to three insurer slots, persisted together.
type SaveVisitRequest struct {
	Form     VisitFormValues          `json:"form"`
	Insurers []coverage.InsurerFields `json:"insurers,omitempty"`
}
