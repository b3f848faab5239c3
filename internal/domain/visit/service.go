package visit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/domain/coverage"
	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

type Service struct {
	client    fhirclient.ResourceClient
	coverages *coverage.Service
	logger    zerolog.Logger
}

func NewService(client fhirclient.ResourceClient, coverages *coverage.Service, logger zerolog.Logger) *Service {
	return &Service{
		client:    client,
		coverages: coverages,
		logger:    logger.With().Str("component", "visit").Logger(),
	}
}

// ListFilter narrows the visit search. Empty fields are skipped.
type ListFilter struct {
	PersonalID string
	Name       string
	From       string
	To         string
}

// List returns search-table rows for matching encounters. Patients arrive in
// the same bundle through _include, so the whole table needs one round trip.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]VisitTableRow, error) {
	params := url.Values{}
	params.Set("_include", "Encounter:subject")
	if filter.PersonalID != "" {
		params.Set("subject.identifier", fhir.IdentPersonalID+"|"+filter.PersonalID)
	}
	if filter.Name != "" {
		params.Set("subject.name", filter.Name)
	}
	if filter.From != "" {
		params.Add("date", "ge"+filter.From)
	}
	if filter.To != "" {
		params.Add("date", "le"+filter.To)
	}

	bundle, err := s.client.Search(ctx, "Encounter", params)
	if err != nil {
		return nil, err
	}

	rows := make([]VisitTableRow, 0, len(bundle.Entry))
	for _, raw := range bundle.ResourcesOf("Encounter") {
		var enc fhir.Encounter
		if err := json.Unmarshal(raw, &enc); err != nil {
			return nil, fmt.Errorf("decode encounter: %w", err)
		}
		rows = append(rows, ProjectRow(&enc, bundle))
	}
	return rows, nil
}

// GetDetail loads the full detail view for one visit: form values, the
// patient block, insurer slots and the visit's position in the patient's
// history.
func (s *Service) GetDetail(ctx context.Context, encounterID string) (*VisitDetail, error) {
	var enc fhir.Encounter
	if err := s.client.Read(ctx, "Encounter", encounterID, &enc); err != nil {
		return nil, err
	}

	detail := &VisitDetail{
		EncounterID: encounterID,
		Form:        EncounterToFormValues(&enc),
	}

	if enc.Subject == nil {
		return detail, nil
	}
	patientID := fhir.ReferenceID(enc.Subject.Reference)

	var patient fhir.Patient
	if err := s.client.Read(ctx, "Patient", patientID, &patient); err != nil {
		return nil, err
	}
	detail.Patient = PatientToDemographics(&patient)

	covs, err := s.coverages.CoveragesForEncounter(ctx, encounterID, patientID)
	if err != nil {
		return nil, err
	}
	// Slot-positional: index i holds order i+1, unused slots stay empty.
	// A dense list would shift a lone order-2 insurer into slot 1 and the
	// next save would duplicate its Coverage under a new order.
	detail.Insurers = make([]coverage.InsurerFields, coverage.MaxInsurers)
	for i := range covs {
		if o := orderOf(&covs[i]); o >= 1 && o <= coverage.MaxInsurers {
			detail.Insurers[o-1] = coverage.FieldsFromCoverage(covs[i])
		}
	}

	count, total, err := s.visitPosition(ctx, patientID, encounterID)
	if err != nil {
		return nil, err
	}
	detail.VisitCount = count
	detail.TotalVisits = total
	return detail, nil
}

// visitPosition fetches the patient's whole encounter history, orders it by
// period start and locates the current encounter. Per-patient histories at
// hospital scale stay small enough for this full scan.
func (s *Service) visitPosition(ctx context.Context, patientID, encounterID string) (count, total int, err error) {
	params := url.Values{}
	params.Set("subject", fhir.FormatReference("Patient", patientID))
	bundle, err := s.client.Search(ctx, "Encounter", params)
	if err != nil {
		return 0, 0, err
	}

	var history []fhir.Encounter
	for _, raw := range bundle.ResourcesOf("Encounter") {
		var enc fhir.Encounter
		if err := json.Unmarshal(raw, &enc); err != nil {
			return 0, 0, fmt.Errorf("decode encounter: %w", err)
		}
		history = append(history, enc)
	}
	sort.Slice(history, func(i, j int) bool {
		return periodStart(&history[i]) < periodStart(&history[j])
	})

	for i := range history {
		if history[i].ID == encounterID {
			return i + 1, len(history), nil
		}
	}
	return 0, len(history), nil
}

// Create registers a new visit: the Encounter first, then the insurer
// slots. If a coverage write fails, the fresh Encounter is deleted so a
// half-registered visit never lingers.
func (s *Service) Create(ctx context.Context, patientID string, req SaveVisitRequest) (*VisitDetail, error) {
	enc := &fhir.Encounter{
		Subject: &fhir.Reference{Reference: fhir.FormatReference("Patient", patientID)},
	}
	ApplyFormValues(enc, req.Form)
	if err := s.client.Create(ctx, enc); err != nil {
		return nil, err
	}

	if err := s.coverages.SaveAll(ctx, enc.ID, patientID, req.Insurers); err != nil {
		ref := fhir.FormatReference("Encounter", enc.ID)
		if delErr := s.client.Delete(ctx, "Encounter", enc.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("encounter_id", enc.ID).Msg("compensating delete failed")
			return nil, prependCommitted(err, ref)
		}
		return nil, prependRolledBack(err, ref)
	}
	return s.GetDetail(ctx, enc.ID)
}

// Save updates an existing visit and its insurer slots. The Encounter write
// is not compensated when a later coverage write fails; the returned error
// reports it as committed.
func (s *Service) Save(ctx context.Context, encounterID string, req SaveVisitRequest) (*VisitDetail, error) {
	var enc fhir.Encounter
	if err := s.client.Read(ctx, "Encounter", encounterID, &enc); err != nil {
		return nil, err
	}
	patientID := ""
	if enc.Subject != nil {
		patientID = fhir.ReferenceID(enc.Subject.Reference)
	}
	// Rejected before the Encounter write so a doomed save commits nothing.
	if patientID == "" && hasInsurers(req.Insurers) {
		return nil, fmt.Errorf("encounter %s has no subject, cannot attach coverages", encounterID)
	}

	ApplyFormValues(&enc, req.Form)
	if err := s.client.Update(ctx, &enc); err != nil {
		return nil, err
	}

	if err := s.coverages.SaveAll(ctx, encounterID, patientID, req.Insurers); err != nil {
		return nil, prependCommitted(err, fhir.FormatReference("Encounter", encounterID))
	}
	return s.GetDetail(ctx, encounterID)
}

func prependCommitted(err error, ref string) error {
	var pse *fhir.PartialSaveError
	if errors.As(err, &pse) {
		pse.Committed = append([]string{ref}, pse.Committed...)
		return pse
	}
	return &fhir.PartialSaveError{Committed: []string{ref}, Err: err}
}

func prependRolledBack(err error, ref string) error {
	var pse *fhir.PartialSaveError
	if errors.As(err, &pse) {
		pse.RolledBack = append([]string{ref}, pse.RolledBack...)
		return pse
	}
	return &fhir.PartialSaveError{RolledBack: []string{ref}, Err: err}
}

func hasInsurers(slots []coverage.InsurerFields) bool {
	for _, f := range slots {
		if !f.Empty() {
			return true
		}
	}
	return false
}

func periodStart(enc *fhir.Encounter) string {
	if enc.Period == nil {
		return ""
	}
	return enc.Period.Start
}

func orderOf(cov *fhir.Coverage) int {
	if cov.Order == nil {
		return 0
	}
	return *cov.Order
}
