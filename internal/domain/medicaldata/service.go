package medicaldata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

type ListFilter struct {
	Name            string
	Category        string
	IncludeInactive bool
}

type Service struct {
	client fhirclient.ResourceClient
	logger zerolog.Logger
}

func NewService(client fhirclient.ResourceClient, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger.With().Str("component", "medicaldata").Logger()}
}

// List fetches every ObservationDefinition and filters client-side: the
// resource server does not index the category extension, and name matching
// spans both the English text and the Georgian designation.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]MedicalDataRow, error) {
	bundle, err := s.client.Search(ctx, "ObservationDefinition", url.Values{})
	if err != nil {
		return nil, err
	}
	var rows []MedicalDataRow
	for _, raw := range bundle.ResourcesOf("ObservationDefinition") {
		var od fhir.ObservationDefinition
		if err := json.Unmarshal(raw, &od); err != nil {
			return nil, fmt.Errorf("decode observation definition: %w", err)
		}
		row := ToRow(od)
		if !filter.IncludeInactive && !row.Active {
			continue
		}
		if filter.Category != "" && row.Category != filter.Category {
			continue
		}
		if filter.Name != "" && !matchesName(row, filter.Name) {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SortOrder != rows[j].SortOrder {
			return rows[i].SortOrder < rows[j].SortOrder
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func matchesName(row MedicalDataRow, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(row.Name), q) ||
		strings.Contains(strings.ToLower(row.NameKa), q)
}

func (s *Service) Create(ctx context.Context, v MedicalDataFormValues) (*MedicalDataRow, error) {
	if v.Code == "" {
		return nil, fmt.Errorf("code is required")
	}
	od := &fhir.ObservationDefinition{}
	ApplyFormValues(od, v)
	if err := s.client.Create(ctx, od); err != nil {
		return nil, err
	}
	row := ToRow(*od)
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id string, v MedicalDataFormValues) (*MedicalDataRow, error) {
	var od fhir.ObservationDefinition
	if err := s.client.Read(ctx, "ObservationDefinition", id, &od); err != nil {
		return nil, err
	}
	ApplyFormValues(&od, v)
	if err := s.client.Update(ctx, &od); err != nil {
		return nil, err
	}
	row := ToRow(od)
	return &row, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	var od fhir.ObservationDefinition
	if err := s.client.Read(ctx, "ObservationDefinition", id, &od); err != nil {
		return err
	}
	od.Status = "retired"
	return s.client.Update(ctx, &od)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "ObservationDefinition", id)
}
