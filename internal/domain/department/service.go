package department

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

// ListFilter mirrors the search controls of the department screen. Name and
// code filtering is delegated to the resource server's indexes.
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
	return &Service{client: client, logger: logger.With().Str("component", "department").Logger()}
}

func (s *Service) fetch(ctx context.Context, filter ListFilter) ([]fhir.Organization, error) {
	params := url.Values{}
	if filter.Name != "" {
		params.Set("name:contains", filter.Name)
	}
	if filter.Code != "" {
		params.Set("identifier", fhir.IdentDepartmentID+"|"+filter.Code)
	}
	if !filter.IncludeInactive {
		params.Set("active", "true")
	}
	bundle, err := s.client.Search(ctx, "Organization", params)
	if err != nil {
		return nil, err
	}
	var out []fhir.Organization
	for _, raw := range bundle.ResourcesOf("Organization") {
		var org fhir.Organization
		if err := json.Unmarshal(raw, &org); err != nil {
			return nil, fmt.Errorf("decode organization: %w", err)
		}
		out = append(out, org)
	}
	return out, nil
}

// List returns department rows with parent names resolved by a second pass
// over the same fetched list.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]DepartmentRow, error) {
	orgs, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(orgs))
	for _, org := range orgs {
		nameByID[org.ID] = org.Name
	}
	rows := make([]DepartmentRow, 0, len(orgs))
	for _, org := range orgs {
		row := ToRow(org)
		if row.ParentID != "" {
			row.ParentName = nameByID[row.ParentID]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParentOptions lists the departments that may be chosen as a parent for
// selfID. A department is never offered as its own parent.
func (s *Service) ParentOptions(ctx context.Context, selfID string) ([]ParentOption, error) {
	orgs, err := s.fetch(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	opts := make([]ParentOption, 0, len(orgs))
	for _, org := range orgs {
		if org.ID == selfID {
			continue
		}
		opts = append(opts, ParentOption{ID: org.ID, Name: org.Name})
	}
	return opts, nil
}

func (s *Service) Create(ctx context.Context, v DepartmentFormValues) (*DepartmentRow, error) {
	if v.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	org := &fhir.Organization{}
	ApplyFormValues(org, v)
	if err := s.client.Create(ctx, org); err != nil {
		return nil, err
	}
	row := ToRow(*org)
	return &row, nil
}

// Update re-reads the department and merges the form on top, so fields this
// form does not manage survive the write.
func (s *Service) Update(ctx context.Context, id string, v DepartmentFormValues) (*DepartmentRow, error) {
	var org fhir.Organization
	if err := s.client.Read(ctx, "Organization", id, &org); err != nil {
		return nil, err
	}
	ApplyFormValues(&org, v)
	if err := s.client.Update(ctx, &org); err != nil {
		return nil, err
	}
	row := ToRow(org)
	return &row, nil
}

// Deactivate flips active to false, keeping the resource.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	var org fhir.Organization
	if err := s.client.Read(ctx, "Organization", id, &org); err != nil {
		return err
	}
	inactive := false
	org.Active = &inactive
	return s.client.Update(ctx, &org)
}

// Delete removes the resource entirely (admin cleanup).
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "Organization", id)
}
