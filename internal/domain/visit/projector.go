package visit

import (
	"encoding/json"

	"github.com/medimind/emr-admin/internal/platform/fhir"
)

// ProjectRow builds one search-table row from an Encounter and the bundle it
// arrived in. The matching Patient is located by scanning the bundle for the
// ID taken from subject.reference, because _include entries carry no
// positional guarantee relative to their match entries.
func ProjectRow(enc *fhir.Encounter, bundle *fhir.Bundle) VisitTableRow {
	row := VisitTableRow{EncounterID: enc.ID}
	if enc.Period != nil {
		row.VisitDate = enc.Period.Start
		row.DischargeDate = enc.Period.End
	}
	row.RegistrationNumber = registrationNumber(enc)

	if enc.Subject == nil {
		return row
	}
	patientID := fhir.ReferenceID(enc.Subject.Reference)
	if patientID == "" {
		return row
	}
	row.PatientID = patientID

	for _, raw := range bundle.ResourcesOf("Patient") {
		var p fhir.Patient
		if err := json.Unmarshal(raw, &p); err != nil || p.ID != patientID {
			continue
		}
		row.PersonalID = fhir.GetIdentifierValue(p.Identifier, fhir.IdentPersonalID)
		if len(p.Name) > 0 {
			row.LastName = p.Name[0].Family
			if len(p.Name[0].Given) > 0 {
				row.FirstName = p.Name[0].Given[0]
			}
		}
		break
	}
	return row
}

// registrationNumber prefers the stationary registration identifier and
// falls back to the ambulatory one.
func registrationNumber(enc *fhir.Encounter) string {
	if v := fhir.GetIdentifierValue(enc.Identifier, fhir.IdentVisitRegistration); v != "" {
		return v
	}
	return fhir.GetIdentifierValue(enc.Identifier, fhir.IdentAmbulatoryRegistration)
}
