package visit

import (
	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/pkg/fhirmodels"
)

// EncounterToFormValues flattens an Encounter into the visit edit model.
// Every extension-backed field comes back non-nil so the form renders a
// value (possibly empty) for each of them.
func EncounterToFormValues(enc *fhir.Encounter) VisitFormValues {
	v := VisitFormValues{}
	if enc.Period != nil {
		v.VisitDate = enc.Period.Start
		v.DischargeDate = enc.Period.End
	}
	if enc.Class != nil {
		if a, ok := AdmissionFromClass(enc.Class.Code); ok {
			v.AdmissionType = a
		}
	}
	if v.AdmissionType == "" {
		// Older records carry only the extension.
		v.AdmissionType = AdmissionType(fhir.GetExtensionValue(enc.Extension, fhir.ExtAdmissionType))
	}

	v.RegistrationNumber = strPtr(fhir.GetIdentifierValue(enc.Identifier, fhir.IdentVisitRegistration))
	v.AmbulatoryNumber = strPtr(fhir.GetIdentifierValue(enc.Identifier, fhir.IdentAmbulatoryRegistration))

	v.Department = extPtr(enc, fhir.ExtDepartment)
	v.AttendingDoctor = extPtr(enc, fhir.ExtAttendingDoc)
	v.Room = extPtr(enc, fhir.ExtRoom)
	v.Bed = extPtr(enc, fhir.ExtBed)
	v.Guarantee = extPtr(enc, fhir.ExtGuarantee)
	v.Referrer = extPtr(enc, fhir.ExtReferrer)
	v.VisitPurpose = extPtr(enc, fhir.ExtVisitPurpose)
	v.HospitalType = extPtr(enc, fhir.ExtHospitalType)
	v.DischargeType = extPtr(enc, fhir.ExtDischargeType)
	v.StatusCode = extPtr(enc, fhir.ExtStatusCode)
	v.StatusType = extPtr(enc, fhir.ExtStatusType)
	v.Comment = extPtr(enc, fhir.ExtComment)
	return v
}

// ApplyFormValues writes the submitted values back onto the Encounter. A nil
// pointer field is not touched at all, so extensions and identifiers the
// submitting form does not manage survive the save unchanged.
func ApplyFormValues(enc *fhir.Encounter, v VisitFormValues) {
	enc.ResourceType = "Encounter"
	if enc.Status == "" {
		enc.Status = fhirmodels.EncounterStatusInProgress
	}

	if v.VisitDate != "" || v.DischargeDate != "" {
		if enc.Period == nil {
			enc.Period = &fhir.Period{}
		}
		if v.VisitDate != "" {
			enc.Period.Start = v.VisitDate
		}
		enc.Period.End = v.DischargeDate
	}

	if v.AdmissionType != "" {
		if code, ok := ClassFromAdmission(v.AdmissionType); ok {
			enc.Class = &fhir.Coding{System: fhirmodels.ActCodeSystem, Code: code}
		}
		enc.Extension = fhir.SetExtensionValue(enc.Extension, fhir.ExtAdmissionType, string(v.AdmissionType))
	}

	if v.RegistrationNumber != nil {
		enc.Identifier = fhir.SetIdentifierValue(enc.Identifier, fhir.IdentVisitRegistration, *v.RegistrationNumber)
	}
	if v.AmbulatoryNumber != nil {
		enc.Identifier = fhir.SetIdentifierValue(enc.Identifier, fhir.IdentAmbulatoryRegistration, *v.AmbulatoryNumber)
	}

	setExt(enc, fhir.ExtDepartment, v.Department)
	setExt(enc, fhir.ExtAttendingDoc, v.AttendingDoctor)
	setExt(enc, fhir.ExtRoom, v.Room)
	setExt(enc, fhir.ExtBed, v.Bed)
	setExt(enc, fhir.ExtGuarantee, v.Guarantee)
	setExt(enc, fhir.ExtReferrer, v.Referrer)
	setExt(enc, fhir.ExtVisitPurpose, v.VisitPurpose)
	setExt(enc, fhir.ExtHospitalType, v.HospitalType)
	setExt(enc, fhir.ExtDischargeType, v.DischargeType)
	setExt(enc, fhir.ExtStatusCode, v.StatusCode)
	setExt(enc, fhir.ExtStatusType, v.StatusType)
	setExt(enc, fhir.ExtComment, v.Comment)
}

// PatientToDemographics flattens the read-only patient block. Address fields
// come from the first address entry only.
func PatientToDemographics(p *fhir.Patient) PatientDemographics {
	d := PatientDemographics{
		PatientID:    p.ID,
		PersonalID:   fhir.GetIdentifierValue(p.Identifier, fhir.IdentPersonalID),
		BirthDate:    p.BirthDate,
		Gender:       p.Gender,
		Education:    fhir.GetExtensionValue(p.Extension, fhir.ExtEducation),
		FamilyStatus: fhir.GetExtensionValue(p.Extension, fhir.ExtFamilyStatus),
		Employment:   fhir.GetExtensionValue(p.Extension, fhir.ExtEmployment),
		Workplace:    fhir.GetExtensionValue(p.Extension, fhir.ExtWorkplace),
	}
	if len(p.Name) > 0 {
		d.LastName = p.Name[0].Family
		if len(p.Name[0].Given) > 0 {
			d.FirstName = p.Name[0].Given[0]
		}
	}
	if len(p.Address) > 0 {
		addr := p.Address[0]
		d.Region = addr.State
		d.District = addr.District
		d.City = addr.City
		if len(addr.Line) > 0 {
			d.AddressLine = addr.Line[0]
		}
	} else {
		// Records migrated from the old registry carry the address as
		// extensions instead of an Address element.
		d.Region = fhir.GetExtensionValue(p.Extension, fhir.ExtRegion)
		d.District = fhir.GetExtensionValue(p.Extension, fhir.ExtDistrict)
		d.City = fhir.GetExtensionValue(p.Extension, fhir.ExtCity)
		d.AddressLine = fhir.GetExtensionValue(p.Extension, fhir.ExtAddress)
	}
	return d
}

func setExt(enc *fhir.Encounter, url string, value *string) {
	if value == nil {
		return
	}
	enc.Extension = fhir.SetExtensionValue(enc.Extension, url, *value)
}

func extPtr(enc *fhir.Encounter, url string) *string {
	v := fhir.GetExtensionValue(enc.Extension, url)
	return &v
}

func strPtr(s string) *string { return &s }
