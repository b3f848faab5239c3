package visit

import (
	"testing"

	"github.com/medimind/emr-admin/internal/platform/fhir"
)

func TestAdmissionMapping_Bijection(t *testing.T) {
	cases := []struct {
		class string
		want  AdmissionType
	}{
		{"AMB", "3"},
		{"IMP", "1"},
		{"EMER", "2"},
	}
	for _, tc := range cases {
		got, ok := AdmissionFromClass(tc.class)
		if !ok || got != tc.want {
			t.Errorf("AdmissionFromClass(%q) = %q, %v; want %q", tc.class, got, ok, tc.want)
		}
		back, ok := ClassFromAdmission(got)
		if !ok || back != tc.class {
			t.Errorf("ClassFromAdmission(%q) = %q, %v; want %q", got, back, ok, tc.class)
		}
	}
	if _, ok := AdmissionFromClass("VR"); ok {
		t.Error("unknown class code must not map")
	}
}

func TestEncounterToFormValues_AmbulatoryClass(t *testing.T) {
	enc := &fhir.Encounter{
		Class:  &fhir.Coding{Code: "AMB"},
		Period: &fhir.Period{Start: "2025-03-01T09:00:00Z"},
	}
	v := EncounterToFormValues(enc)
	if v.AdmissionType != "3" {
		t.Errorf("admissionType = %q, want 3", v.AdmissionType)
	}
	if v.VisitDate != "2025-03-01T09:00:00Z" {
		t.Errorf("visitDate = %q", v.VisitDate)
	}
}

func TestEncounterToFormValues_ExtensionFallbackForClass(t *testing.T) {
	enc := &fhir.Encounter{}
	enc.Extension = fhir.SetExtensionValue(enc.Extension, fhir.ExtAdmissionType, "1")
	if v := EncounterToFormValues(enc); v.AdmissionType != "1" {
		t.Errorf("admissionType = %q, want 1 from extension", v.AdmissionType)
	}
}

func TestApplyFormValues_NilFieldsUntouched(t *testing.T) {
	enc := &fhir.Encounter{}
	enc.Extension = fhir.SetExtensionValue(enc.Extension, fhir.ExtRoom, "305")
	enc.Extension = fhir.SetExtensionValue(enc.Extension, fhir.ExtBed, "2")

	comment := "post-op check"
	ApplyFormValues(enc, VisitFormValues{Comment: &comment})

	if got := fhir.GetExtensionValue(enc.Extension, fhir.ExtRoom); got != "305" {
		t.Errorf("room = %q, unmanaged field must survive", got)
	}
	if got := fhir.GetExtensionValue(enc.Extension, fhir.ExtBed); got != "2" {
		t.Errorf("bed = %q, unmanaged field must survive", got)
	}
	if got := fhir.GetExtensionValue(enc.Extension, fhir.ExtComment); got != "post-op check" {
		t.Errorf("comment = %q", got)
	}
}

func TestApplyFormValues_RepeatWriteKeepsSingleEntry(t *testing.T) {
	enc := &fhir.Encounter{}
	first, second := "Dr. Beridze", "Dr. Gelashvili"
	ApplyFormValues(enc, VisitFormValues{AttendingDoctor: &first})
	ApplyFormValues(enc, VisitFormValues{AttendingDoctor: &second})

	count := 0
	for _, ext := range enc.Extension {
		if ext.URL == fhir.ExtAttendingDoc {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("attending-doctor extensions = %d, want 1", count)
	}
	if got := fhir.GetExtensionValue(enc.Extension, fhir.ExtAttendingDoc); got != second {
		t.Errorf("value = %q, want %q", got, second)
	}
}

func TestApplyFormValues_ClassAndExtensionStayInSync(t *testing.T) {
	enc := &fhir.Encounter{}
	ApplyFormValues(enc, VisitFormValues{AdmissionType: AdmissionStationary})

	if enc.Class == nil || enc.Class.Code != "IMP" {
		t.Fatalf("class = %+v, want IMP", enc.Class)
	}
	if got := fhir.GetExtensionValue(enc.Extension, fhir.ExtAdmissionType); got != "1" {
		t.Errorf("admission-type extension = %q, want 1", got)
	}
}

func TestPatientToDemographics(t *testing.T) {
	p := &fhir.Patient{
		ID:        "pat-1",
		Gender:    "female",
		BirthDate: "1984-07-12",
		Identifier: []fhir.Identifier{
			{System: fhir.IdentPersonalID, Value: "01008012345"},
		},
		Name: []fhir.HumanName{{Family: "Kapanadze", Given: []string{"Nino"}}},
		Address: []fhir.Address{{
			State:    "Imereti",
			District: "Kutaisi",
			City:     "Kutaisi",
			Line:     []string{"Rustaveli Ave 14"},
		}},
	}
	p.Extension = fhir.SetExtensionValue(p.Extension, fhir.ExtEducation, "higher")
	p.Extension = fhir.SetExtensionValue(p.Extension, fhir.ExtFamilyStatus, "married")

	d := PatientToDemographics(p)
	if d.PersonalID != "01008012345" || d.FirstName != "Nino" || d.LastName != "Kapanadze" {
		t.Errorf("identity fields wrong: %+v", d)
	}
	if d.Region != "Imereti" || d.AddressLine != "Rustaveli Ave 14" {
		t.Errorf("address fields wrong: %+v", d)
	}
	if d.Education != "higher" || d.FamilyStatus != "married" {
		t.Errorf("extension fields wrong: %+v", d)
	}
}

func TestPatientToDemographics_ExtensionAddressFallback(t *testing.T) {
	p := &fhir.Patient{ID: "pat-2"}
	p.Extension = fhir.SetExtensionValue(p.Extension, fhir.ExtCity, "Tbilisi")
	p.Extension = fhir.SetExtensionValue(p.Extension, fhir.ExtAddress, "Chavchavadze 5")

	d := PatientToDemographics(p)
	if d.City != "Tbilisi" || d.AddressLine != "Chavchavadze 5" {
		t.Errorf("extension address not used: %+v", d)
	}
}
