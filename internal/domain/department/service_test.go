package department

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhir"
	"github.com/medimind/emr-admin/internal/platform/fhirclient"
)

type fakeClient struct {
	orgs   map[string]*fhir.Organization
	nextID int
}

func newFakeClient() *fakeClient {
	return &fakeClient{orgs: make(map[string]*fhir.Organization)}
}

func (f *fakeClient) Read(_ context.Context, resourceType, id string, out any) error {
	org, ok := f.orgs[id]
	if !ok {
		return &fhir.NotFoundError{Resource: resourceType, Key: id}
	}
	raw, _ := json.Marshal(org)
	return json.Unmarshal(raw, out)
}

func (f *fakeClient) Search(_ context.Context, _ string, params url.Values) (*fhir.Bundle, error) {
	bundle := &fhir.Bundle{ResourceType: "Bundle", Type: "searchset"}
	activeOnly := params.Get("active") == "true"
	for _, org := range f.orgs {
		if activeOnly && org.Active != nil && !*org.Active {
			continue
		}
		raw, _ := json.Marshal(org)
		bundle.Entry = append(bundle.Entry, fhir.BundleEntry{Resource: raw})
	}
	return bundle, nil
}

func (f *fakeClient) Create(_ context.Context, res fhirclient.Resource) error {
	org := res.(*fhir.Organization)
	f.nextID++
	org.ID = fmt.Sprintf("org-%d", f.nextID)
	stored := &fhir.Organization{}
	raw, _ := json.Marshal(org)
	json.Unmarshal(raw, stored)
	f.orgs[org.ID] = stored
	return nil
}

func (f *fakeClient) Update(_ context.Context, res fhirclient.Resource) error {
	org := res.(*fhir.Organization)
	if _, ok := f.orgs[org.ID]; !ok {
		return &fhir.NotFoundError{Resource: "Organization", Key: org.ID}
	}
	stored := &fhir.Organization{}
	raw, _ := json.Marshal(org)
	json.Unmarshal(raw, stored)
	f.orgs[org.ID] = stored
	return nil
}

func (f *fakeClient) Delete(_ context.Context, _, id string) error {
	delete(f.orgs, id)
	return nil
}

func newTestService() (*Service, *fakeClient) {
	fc := newFakeClient()
	return NewService(fc, zerolog.Nop()), fc
}

func TestCreateAndList_ParentNameResolved(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	parent, err := svc.Create(ctx, DepartmentFormValues{Code: "D-01", Name: "Surgery", Active: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, DepartmentFormValues{
		Code: "D-02", Name: "Cardiac Surgery", ParentID: parent.ID, Active: true,
	}); err != nil {
		t.Fatal(err)
	}

	rows, err := svc.List(ctx, ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	var child *DepartmentRow
	for i := range rows {
		if rows[i].Code == "D-02" {
			child = &rows[i]
		}
	}
	if child == nil {
		t.Fatal("child department missing from list")
	}
	if child.ParentName != "Surgery" {
		t.Errorf("parent name not resolved from fetched list, got %q", child.ParentName)
	}
}

func TestParentOptions_ExcludesSelf(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, DepartmentFormValues{Code: "D-01", Name: "Surgery", Active: true})
	svc.Create(ctx, DepartmentFormValues{Code: "D-02", Name: "Radiology", Active: true})

	opts, err := svc.ParentOptions(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 1 {
		t.Fatalf("expected 1 option, got %d", len(opts))
	}
	if opts[0].Name != "Radiology" {
		t.Errorf("self not excluded: %+v", opts)
	}
}

func TestUpdate_PreservesUnmanagedFields(t *testing.T) {
	svc, fc := newTestService()
	ctx := context.Background()

	row, _ := svc.Create(ctx, DepartmentFormValues{Code: "D-01", Name: "Surgery", Active: true})
	// A field no department form manages.
	fc.orgs[row.ID].Extension = fhir.SetExtensionValue(fc.orgs[row.ID].Extension, fhir.ExtSortOrder, "5")

	if _, err := svc.Update(ctx, row.ID, DepartmentFormValues{Code: "D-01", Name: "General Surgery", Active: true}); err != nil {
		t.Fatal(err)
	}

	org := fc.orgs[row.ID]
	if org.Name != "General Surgery" {
		t.Errorf("name = %q", org.Name)
	}
	if got := fhir.GetExtensionValue(org.Extension, fhir.ExtSortOrder); got != "5" {
		t.Errorf("unmanaged extension lost on update, got %q", got)
	}
}

func TestDeactivate_SoftDelete(t *testing.T) {
	svc, fc := newTestService()
	ctx := context.Background()

	row, _ := svc.Create(ctx, DepartmentFormValues{Code: "D-01", Name: "Surgery", Active: true})
	if err := svc.Deactivate(ctx, row.ID); err != nil {
		t.Fatal(err)
	}

	if _, ok := fc.orgs[row.ID]; !ok {
		t.Fatal("soft delete removed the resource")
	}
	rows, _ := svc.List(ctx, ListFilter{})
	if len(rows) != 0 {
		t.Errorf("inactive department leaked into default list: %+v", rows)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), "missing", DepartmentFormValues{Name: "X"})
	if !fhir.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
