package coverage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

// MaxInsurers is the number of insurer slots per visit (primary, secondary,
// tertiary).
const MaxInsurers = 3

type Service struct {
	client fhirclient.ResourceClient
	logger zerolog.Logger
}

func NewService(client fhirclient.ResourceClient, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger.With().Str("component", "coverage").Logger()}
}

// CoveragesForEncounter returns every Coverage linked to the encounter. The
// search goes through the patient (beneficiary is indexed) and the
// encounter-id extension is filtered client-side.
func (s *Service) CoveragesForEncounter(ctx context.Context, encounterID, patientID string) ([]fhir.Coverage, error) {
	params := url.Values{}
	params.Set("beneficiary", fhir.FormatReference("Patient", patientID))
	bundle, err := s.client.Search(ctx, "Coverage", params)
	if err != nil {
		return nil, err
	}
	var out []fhir.Coverage
	for _, raw := range bundle.ResourcesOf("Coverage") {
		var cov fhir.Coverage
		if err := json.Unmarshal(raw, &cov); err != nil {
			return nil, fmt.Errorf("decode coverage: %w", err)
		}
		if fhir.GetExtensionValue(cov.Extension, fhir.ExtEncounterID) == encounterID {
			out = append(out, cov)
		}
	}
	return out, nil
}

// Upsert creates or updates the Coverage for one insurer slot. An existing
// Coverage with the same order keeps its resource ID. An empty slot is
// skipped entirely: no create, no update. The bool result reports whether a
// new Coverage was created.
func (s *Service) Upsert(ctx context.Context, encounterID, patientID string, fields InsurerFields, order int) (*fhir.Coverage, bool, error) {
	if order < 1 || order > MaxInsurers {
		return nil, false, fmt.Errorf("coverage order must be 1..%d, got %d", MaxInsurers, order)
	}
	if fields.Empty() {
		return nil, false, nil
	}

	existing, err := s.CoveragesForEncounter(ctx, encounterID, patientID)
	if err != nil {
		return nil, false, err
	}
	for i := range existing {
		if existing[i].Order != nil && *existing[i].Order == order {
			cov := existing[i]
			applyFields(&cov, encounterID, patientID, fields, order)
			if err := s.client.Update(ctx, &cov); err != nil {
				return nil, false, err
			}
			return &cov, false, nil
		}
	}

	cov := &fhir.Coverage{}
	applyFields(cov, encounterID, patientID, fields, order)
	if err := s.client.Create(ctx, cov); err != nil {
		return nil, false, err
	}
	return cov, true, nil
}

// SaveAll persists up to MaxInsurers insurer slots for one encounter as a
// compensating-action sequence: on failure, coverages created during this
// save are deleted again, and the error reports what stuck and what was
// rolled back.
func (s *Service) SaveAll(ctx context.Context, encounterID, patientID string, slots []InsurerFields) error {
	var committed []string
	var createdIDs []string

	for i, fields := range slots {
		if i >= MaxInsurers {
			break
		}
		order := i + 1
		cov, created, err := s.Upsert(ctx, encounterID, patientID, fields, order)
		if err != nil {
			return s.rollback(ctx, committed, createdIDs, fmt.Errorf("%s: %w", coverageSlot(order), err))
		}
		if cov != nil {
			committed = append(committed, fhir.FormatReference("Coverage", cov.ID))
			if created {
				createdIDs = append(createdIDs, cov.ID)
			}
		}
	}
	return nil
}

// rollback deletes the coverages created in this save attempt. Updates to
// pre-existing coverages cannot be compensated and stay committed.
func (s *Service) rollback(ctx context.Context, committed, createdIDs []string, cause error) error {
	var rolledBack []string
	remaining := make([]string, 0, len(committed))

	created := make(map[string]bool, len(createdIDs))
	for _, id := range createdIDs {
		created[id] = true
	}

	for _, ref := range committed {
		id := fhir.ReferenceID(ref)
		if !created[id] {
			remaining = append(remaining, ref)
			continue
		}
		if err := s.client.Delete(ctx, "Coverage", id); err != nil {
			s.logger.Error().Err(err).Str("coverage_id", id).Msg("compensating delete failed")
			remaining = append(remaining, ref)
			continue
		}
		rolledBack = append(rolledBack, ref)
	}

	return &fhir.PartialSaveError{Committed: remaining, RolledBack: rolledBack, Err: cause}
}
