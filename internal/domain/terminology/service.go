package terminology

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

// Service manages the three reference-data CodeSystem containers. Every
// operation re-fetches the container, mutates the concept array locally and
// writes the whole document back with the fetched version as a conditional
// update, so a concurrent writer surfaces as a VersionConflictError instead
// of a silent lost update.
type Service struct {
	client fhirclient.ResourceClient
	logger zerolog.Logger
}

func NewService(client fhirclient.ResourceClient, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger.With().Str("component", "terminology").Logger()}
}

// getOrCreateCodeSystem finds the container by canonical URL, creating it on
// first access. The create path is idempotent from the caller's view: a
// concurrent creator just means the next fetch finds the container.
func (s *Service) getOrCreateCodeSystem(ctx context.Context, canonicalURL, name string) (*fhir.CodeSystem, error) {
	params := url.Values{}
	params.Set("url", canonicalURL)
	bundle, err := s.client.Search(ctx, "CodeSystem", params)
	if err != nil {
		return nil, err
	}
	if entries := bundle.ResourcesOf("CodeSystem"); len(entries) > 0 {
		var cs fhir.CodeSystem
		if err := json.Unmarshal(entries[0], &cs); err != nil {
			return nil, fmt.Errorf("decode code system: %w", err)
		}
		return &cs, nil
	}

	cs := &fhir.CodeSystem{
		ResourceType: "CodeSystem",
		URL:          canonicalURL,
		Name:         name,
		Status:       "active",
		Content:      "complete",
		Concept:      []fhir.Concept{},
	}
	if err := s.client.Create(ctx, cs); err != nil {
		return nil, err
	}
	s.logger.Info().Str("url", canonicalURL).Str("id", cs.ID).Msg("created code system container")
	return cs, nil
}

func (s *Service) listConcepts(ctx context.Context, canonicalURL, name string, includeInactive bool) ([]fhir.Concept, error) {
	cs, err := s.getOrCreateCodeSystem(ctx, canonicalURL, name)
	if err != nil {
		return nil, err
	}
	if includeInactive {
		return cs.Concept, nil
	}
	out := make([]fhir.Concept, 0, len(cs.Concept))
	for _, c := range cs.Concept {
		if conceptActive(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) createConcept(ctx context.Context, canonicalURL, name string, concept fhir.Concept) error {
	if concept.Code == "" {
		return fmt.Errorf("code is required")
	}
	cs, err := s.getOrCreateCodeSystem(ctx, canonicalURL, name)
	if err != nil {
		return err
	}
	for _, existing := range cs.Concept {
		if existing.Code == concept.Code {
			return &fhir.DuplicateCodeError{Code: concept.Code}
		}
	}
	cs.Concept = append(cs.Concept, concept)
	return s.client.Update(ctx, cs)
}

func (s *Service) updateConcept(ctx context.Context, canonicalURL, name, code string, concept fhir.Concept) error {
	cs, err := s.getOrCreateCodeSystem(ctx, canonicalURL, name)
	if err != nil {
		return err
	}
	idx := conceptIndex(cs.Concept, code)
	if idx < 0 {
		return &fhir.NotFoundError{Resource: "Concept", Key: code}
	}
	// Concept identity is positional: replace the object at its index.
	concept.Code = code
	cs.Concept[idx] = concept
	return s.client.Update(ctx, cs)
}

// softDeleteConcept flips the concept's active property to false. Running it
// twice leaves a single active=false property, never a duplicate entry.
func (s *Service) softDeleteConcept(ctx context.Context, canonicalURL, name, code string) error {
	cs, err := s.getOrCreateCodeSystem(ctx, canonicalURL, name)
	if err != nil {
		return err
	}
	idx := conceptIndex(cs.Concept, code)
	if idx < 0 {
		return &fhir.NotFoundError{Resource: "Concept", Key: code}
	}
	setPropertyBool(&cs.Concept[idx], PropActive, false)
	return s.client.Update(ctx, cs)
}

// hardDeleteConcept removes the concept from the container array. Reserved
// for admin cleanup; normal deletion is the soft variant.
func (s *Service) hardDeleteConcept(ctx context.Context, canonicalURL, name, code string) error {
	cs, err := s.getOrCreateCodeSystem(ctx, canonicalURL, name)
	if err != nil {
		return err
	}
	idx := conceptIndex(cs.Concept, code)
	if idx < 0 {
		return &fhir.NotFoundError{Resource: "Concept", Key: code}
	}
	cs.Concept = append(cs.Concept[:idx], cs.Concept[idx+1:]...)
	return s.client.Update(ctx, cs)
}

func conceptIndex(concepts []fhir.Concept, code string) int {
	for i, c := range concepts {
		if c.Code == code {
			return i
		}
	}
	return -1
}

// -- Measurement units --

func (s *Service) ListUnits(ctx context.Context, includeInactive bool) ([]UnitFormValues, error) {
	concepts, err := s.listConcepts(ctx, fhir.CodeSystemUnits, "MeasurementUnits", includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]UnitFormValues, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, ConceptToUnit(c))
	}
	return out, nil
}

func (s *Service) CreateUnit(ctx context.Context, v UnitFormValues) error {
	return s.createConcept(ctx, fhir.CodeSystemUnits, "MeasurementUnits", UnitToConcept(v))
}

func (s *Service) UpdateUnit(ctx context.Context, code string, v UnitFormValues) error {
	return s.updateConcept(ctx, fhir.CodeSystemUnits, "MeasurementUnits", code, UnitToConcept(v))
}

func (s *Service) DeactivateUnit(ctx context.Context, code string) error {
	return s.softDeleteConcept(ctx, fhir.CodeSystemUnits, "MeasurementUnits", code)
}

func (s *Service) PurgeUnit(ctx context.Context, code string) error {
	return s.hardDeleteConcept(ctx, fhir.CodeSystemUnits, "MeasurementUnits", code)
}

// -- Administration routes --

func (s *Service) ListAdminRoutes(ctx context.Context, includeInactive bool) ([]AdminRouteFormValues, error) {
	concepts, err := s.listConcepts(ctx, fhir.CodeSystemAdminRoutes, "AdminRoutes", includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]AdminRouteFormValues, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, ConceptToAdminRoute(c))
	}
	return out, nil
}

func (s *Service) CreateAdminRoute(ctx context.Context, v AdminRouteFormValues) error {
	return s.createConcept(ctx, fhir.CodeSystemAdminRoutes, "AdminRoutes", AdminRouteToConcept(v))
}

func (s *Service) UpdateAdminRoute(ctx context.Context, code string, v AdminRouteFormValues) error {
	return s.updateConcept(ctx, fhir.CodeSystemAdminRoutes, "AdminRoutes", code, AdminRouteToConcept(v))
}

func (s *Service) DeactivateAdminRoute(ctx context.Context, code string) error {
	return s.softDeleteConcept(ctx, fhir.CodeSystemAdminRoutes, "AdminRoutes", code)
}

func (s *Service) PurgeAdminRoute(ctx context.Context, code string) error {
	return s.hardDeleteConcept(ctx, fhir.CodeSystemAdminRoutes, "AdminRoutes", code)
}

// -- Operator types --

func (s *Service) ListOperatorTypes(ctx context.Context, includeInactive bool) ([]OperatorTypeFormValues, error) {
	concepts, err := s.listConcepts(ctx, fhir.CodeSystemOperatorTypes, "OperatorTypes", includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]OperatorTypeFormValues, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, ConceptToOperatorType(c))
	}
	return out, nil
}

func (s *Service) CreateOperatorType(ctx context.Context, v OperatorTypeFormValues) error {
	return s.createConcept(ctx, fhir.CodeSystemOperatorTypes, "OperatorTypes", OperatorTypeToConcept(v))
}

func (s *Service) UpdateOperatorType(ctx context.Context, code string, v OperatorTypeFormValues) error {
	return s.updateConcept(ctx, fhir.CodeSystemOperatorTypes, "OperatorTypes", code, OperatorTypeToConcept(v))
}

func (s *Service) DeactivateOperatorType(ctx context.Context, code string) error {
	return s.softDeleteConcept(ctx, fhir.CodeSystemOperatorTypes, "OperatorTypes", code)
}

func (s *Service) PurgeOperatorType(ctx context.Context, code string) error {
	return s.hardDeleteConcept(ctx, fhir.CodeSystemOperatorTypes, "OperatorTypes", code)
}
