package visit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/domain/coverage"
	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

// fakeClient stores raw resources per type and reproduces the handful of
// search parameters the visit flows rely on.
type fakeClient struct {
	store      map[string]map[string]json.RawMessage
	nextID     int
	failCreate string // resource type whose next create fails
	deleted    []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{store: map[string]map[string]json.RawMessage{}}
}

func (f *fakeClient) put(resourceType, id string, res any) {
	if f.store[resourceType] == nil {
		f.store[resourceType] = map[string]json.RawMessage{}
	}
	raw, _ := json.Marshal(res)
	f.store[resourceType][id] = raw
}

func (f *fakeClient) Read(_ context.Context, resourceType, id string, out any) error {
	raw, ok := f.store[resourceType][id]
	if !ok {
		return &fhir.NotFoundError{Resource: resourceType, Key: id}
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeClient) Search(_ context.Context, resourceType string, params url.Values) (*fhir.Bundle, error) {
	bundle := &fhir.Bundle{ResourceType: "Bundle", Type: "searchset"}
	switch resourceType {
	case "Encounter":
		subject := params.Get("subject")
		for _, raw := range f.store["Encounter"] {
			var enc fhir.Encounter
			json.Unmarshal(raw, &enc)
			if subject != "" && (enc.Subject == nil || enc.Subject.Reference != subject) {
				continue
			}
			bundle.Entry = append(bundle.Entry, fhir.BundleEntry{Resource: raw})
		}
		if params.Get("_include") == "Encounter:subject" {
			for _, raw := range f.store["Patient"] {
				bundle.Entry = append(bundle.Entry, fhir.BundleEntry{Resource: raw})
			}
		}
	case "Coverage":
		beneficiary := params.Get("beneficiary")
		for _, raw := range f.store["Coverage"] {
			var cov fhir.Coverage
			json.Unmarshal(raw, &cov)
			if beneficiary != "" && (cov.Beneficiary == nil || cov.Beneficiary.Reference != beneficiary) {
				continue
			}
			bundle.Entry = append(bundle.Entry, fhir.BundleEntry{Resource: raw})
		}
	}
	return bundle, nil
}

func (f *fakeClient) Create(_ context.Context, res fhirclient.Resource) error {
	rt := res.ResourceName()
	if f.failCreate == rt {
		f.failCreate = ""
		return &fhir.NetworkError{Op: "create", Status: 500, Err: errors.New("injected")}
	}
	f.nextID++
	id := fmt.Sprintf("%s-%d", rt, f.nextID)
	switch r := res.(type) {
	case *fhir.Encounter:
		r.ID = id
	case *fhir.Coverage:
		r.ID = id
	default:
		return fmt.Errorf("unexpected resource %T", res)
	}
	f.put(rt, id, res)
	return nil
}

func (f *fakeClient) Update(_ context.Context, res fhirclient.Resource) error {
	rt := res.ResourceName()
	if _, ok := f.store[rt][res.ResourceID()]; !ok {
		return &fhir.NotFoundError{Resource: rt, Key: res.ResourceID()}
	}
	f.put(rt, res.ResourceID(), res)
	return nil
}

func (f *fakeClient) Delete(_ context.Context, resourceType, id string) error {
	f.deleted = append(f.deleted, resourceType+"/"+id)
	delete(f.store[resourceType], id)
	return nil
}

func newTestService() (*Service, *fakeClient) {
	fc := newFakeClient()
	covSvc := coverage.NewService(fc, zerolog.Nop())
	return NewService(fc, covSvc, zerolog.Nop()), fc
}

func seedPatient(fc *fakeClient, id string) {
	fc.put("Patient", id, &fhir.Patient{
		ResourceType: "Patient",
		ID:           id,
		Name:         []fhir.HumanName{{Family: "Beridze", Given: []string{"Luka"}}},
		Identifier:   []fhir.Identifier{{System: fhir.IdentPersonalID, Value: "01001055777"}},
	})
}

func seedEncounter(fc *fakeClient, id, patientID, start string) {
	fc.put("Encounter", id, &fhir.Encounter{
		ResourceType: "Encounter",
		ID:           id,
		Subject:      &fhir.Reference{Reference: "Patient/" + patientID},
		Period:       &fhir.Period{Start: start},
	})
}

func TestList_JoinsIncludedPatients(t *testing.T) {
	svc, fc := newTestService()
	seedPatient(fc, "pat-1")
	seedEncounter(fc, "enc-1", "pat-1", "2025-01-10")

	rows, err := svc.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].LastName != "Beridze" || rows[0].PersonalID != "01001055777" {
		t.Errorf("row = %+v, patient fields missing", rows[0])
	}
}

func TestGetDetail_VisitPosition(t *testing.T) {
	svc, fc := newTestService()
	seedPatient(fc, "pat-1")
	// Stored out of chronological order on purpose.
	seedEncounter(fc, "enc-b", "pat-1", "2025-02-01")
	seedEncounter(fc, "enc-c", "pat-1", "2025-03-01")
	seedEncounter(fc, "enc-a", "pat-1", "2025-01-01")

	detail, err := svc.GetDetail(context.Background(), "enc-b")
	if err != nil {
		t.Fatal(err)
	}
	if detail.VisitCount != 2 || detail.TotalVisits != 3 {
		t.Errorf("position = %d/%d, want 2/3", detail.VisitCount, detail.TotalVisits)
	}
}

func TestGetDetail_InsurerSlotsArePositional(t *testing.T) {
	svc, fc := newTestService()
	seedPatient(fc, "pat-1")
	seedEncounter(fc, "enc-1", "pat-1", "2025-01-01")

	slots := []coverage.InsurerFields{
		{InsuranceCompany: "ins-gpi"},
		{InsuranceCompany: "ins-aldagi"},
	}
	covSvc := coverage.NewService(fc, zerolog.Nop())
	if err := covSvc.SaveAll(context.Background(), "enc-1", "pat-1", slots); err != nil {
		t.Fatal(err)
	}

	detail, err := svc.GetDetail(context.Background(), "enc-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Insurers) != coverage.MaxInsurers {
		t.Fatalf("insurers = %d, want fixed length %d", len(detail.Insurers), coverage.MaxInsurers)
	}
	if detail.Insurers[0].InsuranceCompany != "ins-gpi" {
		t.Errorf("slot 1 = %q, want ins-gpi", detail.Insurers[0].InsuranceCompany)
	}
	if detail.Insurers[1].InsuranceCompany != "ins-aldagi" {
		t.Errorf("slot 2 = %q, want ins-aldagi", detail.Insurers[1].InsuranceCompany)
	}
	if !detail.Insurers[2].Empty() {
		t.Errorf("slot 3 = %+v, want empty", detail.Insurers[2])
	}
}

func TestDetailRoundTrip_KeepsLoneSecondSlotInPlace(t *testing.T) {
	svc, fc := newTestService()
	seedPatient(fc, "pat-1")

	// Slot 1 unused, slot 2 occupied.
	detail, err := svc.Create(context.Background(), "pat-1", SaveVisitRequest{
		Insurers: []coverage.InsurerFields{{}, {InsuranceCompany: "ins-tbc"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !detail.Insurers[0].Empty() || detail.Insurers[1].InsuranceCompany != "ins-tbc" {
		t.Fatalf("insurers = %+v, want the lone insurer in slot 2", detail.Insurers)
	}

	// Saving the detail payload back unchanged must not move the insurer to
	// order 1 and mint a second Coverage.
	detail2, err := svc.Save(context.Background(), detail.EncounterID, SaveVisitRequest{
		Form:     detail.Form,
		Insurers: detail.Insurers,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.store["Coverage"]) != 1 {
		t.Fatalf("coverages = %d after round-trip save, want 1", len(fc.store["Coverage"]))
	}
	if !detail2.Insurers[0].Empty() || detail2.Insurers[1].InsuranceCompany != "ins-tbc" {
		t.Errorf("insurers after re-save = %+v, slot must not shift", detail2.Insurers)
	}
}

func TestSave_NoSubjectRejectedBeforeEncounterWrite(t *testing.T) {
	svc, fc := newTestService()
	fc.put("Encounter", "enc-1", &fhir.Encounter{ResourceType: "Encounter", ID: "enc-1"})

	room := "7"
	_, err := svc.Save(context.Background(), "enc-1", SaveVisitRequest{
		Form:     VisitFormValues{Room: &room},
		Insurers: []coverage.InsurerFields{{InsuranceCompany: "ins-gpi"}},
	})
	if err == nil {
		t.Fatal("expected error for subjectless encounter with insurers")
	}

	var stored fhir.Encounter
	if err := fc.Read(context.Background(), "Encounter", "enc-1", &stored); err != nil {
		t.Fatal(err)
	}
	if got := fhir.GetExtensionValue(stored.Extension, fhir.ExtRoom); got != "" {
		t.Errorf("room = %q, encounter must stay untouched when the save is rejected", got)
	}
}

func TestSave_PreservesUnmanagedExtensions(t *testing.T) {
	svc, fc := newTestService()
	seedPatient(fc, "pat-1")
	enc := &fhir.Encounter{
		ResourceType: "Encounter",
		ID:           "enc-1",
		Subject:      &fhir.Reference{Reference: "Patient/pat-1"},
	}
	enc.Extension = fhir.SetExtensionValue(enc.Extension, fhir.ExtGuarantee, "G-55")
	fc.put("Encounter", "enc-1", enc)

	room := "412"
	if _, err := svc.Save(context.Background(), "enc-1", SaveVisitRequest{
		Form: VisitFormValues{Room: &room},
	}); err != nil {
		t.Fatal(err)
	}

	var stored fhir.Encounter
	if err := fc.Read(context.Background(), "Encounter", "enc-1", &stored); err != nil {
		t.Fatal(err)
	}
	if got := fhir.GetExtensionValue(stored.Extension, fhir.ExtGuarantee); got != "G-55" {
		t.Errorf("guarantee = %q, unmanaged extension lost on save", got)
	}
	if got := fhir.GetExtensionValue(stored.Extension, fhir.ExtRoom); got != "412" {
		t.Errorf("room = %q", got)
	}
}

func TestCreate_RollsBackEncounterWhenCoverageFails(t *testing.T) {
	svc, fc := newTestService()
	seedPatient(fc, "pat-1")
	fc.failCreate = "Coverage"

	_, err := svc.Create(context.Background(), "pat-1", SaveVisitRequest{
		Form:     VisitFormValues{AdmissionType: AdmissionAmbulatory},
		Insurers: []coverage.InsurerFields{{InsuranceCompany: "ins-gpi"}},
	})
	var pse *fhir.PartialSaveError
	if !errors.As(err, &pse) {
		t.Fatalf("error type = %T, want *fhir.PartialSaveError", err)
	}
	if len(fc.store["Encounter"]) != 0 {
		t.Error("encounter must be deleted when a coverage write fails")
	}
	if len(pse.RolledBack) == 0 {
		t.Errorf("rolled back = %v, want the encounter listed", pse.RolledBack)
	}
}

func TestSave_ReportsEncounterCommittedOnCoverageFailure(t *testing.T) {
	svc, fc := newTestService()
	seedPatient(fc, "pat-1")
	seedEncounter(fc, "enc-1", "pat-1", "2025-01-01")
	fc.failCreate = "Coverage"

	_, err := svc.Save(context.Background(), "enc-1", SaveVisitRequest{
		Insurers: []coverage.InsurerFields{{InsuranceCompany: "ins-gpi"}},
	})
	var pse *fhir.PartialSaveError
	if !errors.As(err, &pse) {
		t.Fatalf("error type = %T, want *fhir.PartialSaveError", err)
	}
	if len(pse.Committed) == 0 || pse.Committed[0] != "Encounter/enc-1" {
		t.Errorf("committed = %v, want Encounter/enc-1 first", pse.Committed)
	}
	if _, ok := fc.store["Encounter"]["enc-1"]; !ok {
		t.Error("existing encounter must not be deleted on coverage failure")
	}
}
