package cashregister

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

type ListFilter struct {
	Name            string
	Code            string
	IncludeInactive bool
}

type Service struct {
	client fhirclient.ResourceClient
	logger zerolog.Logger
}

func NewService(client fhirclient.ResourceClient, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger.With().Str("component", "cashregister").Logger()}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]CashRegisterRow, error) {
	params := url.Values{}
	if filter.Name != "" {
		params.Set("name:contains", filter.Name)
	}
	if filter.Code != "" {
		params.Set("identifier", fhir.IdentCashRegisterID+"|"+filter.Code)
	}
	if !filter.IncludeInactive {
		params.Set("status", "active")
	}
	bundle, err := s.client.Search(ctx, "Location", params)
	if err != nil {
		return nil, err
	}
	var rows []CashRegisterRow
	for _, raw := range bundle.ResourcesOf("Location") {
		var loc fhir.Location
		if err := json.Unmarshal(raw, &loc); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		rows = append(rows, ToRow(loc))
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, v CashRegisterFormValues) (*CashRegisterRow, error) {
	if v.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	loc := &fhir.Location{}
	ApplyFormValues(loc, v)
	if err := s.client.Create(ctx, loc); err != nil {
		return nil, err
	}
	row := ToRow(*loc)
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id string, v CashRegisterFormValues) (*CashRegisterRow, error) {
	var loc fhir.Location
	if err := s.client.Read(ctx, "Location", id, &loc); err != nil {
		return nil, err
	}
	ApplyFormValues(&loc, v)
	if err := s.client.Update(ctx, &loc); err != nil {
		return nil, err
	}
	row := ToRow(loc)
	return &row, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	var loc fhir.Location
	if err := s.client.Read(ctx, "Location", id, &loc); err != nil {
		return err
	}
	loc.Status = "inactive"
	return s.client.Update(ctx, &loc)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "Location", id)
}
