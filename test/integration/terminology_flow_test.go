package integration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/domain/terminology"
	"github.com/medimind/emr-admin/internal/platform/fhir"
)

func TestUnitLifecycle(t *testing.T) {
	client, _ := newTestClient(t)
	svc := terminology.NewService(client, zerolog.Nop())
	ctx := context.Background()

	// First create builds the container lazily.
	if err := svc.CreateUnit(ctx, terminology.UnitFormValues{
		Code: "mg", NameKa: "მილიგრამი", NameEn: "milligram", Symbol: "mg", Active: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateUnit(ctx, terminology.UnitFormValues{
		Code: "ml", NameKa: "მილილიტრი", NameEn: "milliliter", Symbol: "ml", Active: true,
	}); err != nil {
		t.Fatal(err)
	}

	// Duplicate natural key is rejected.
	if err := svc.CreateUnit(ctx, terminology.UnitFormValues{Code: "mg"}); !fhir.IsDuplicateCode(err) {
		t.Fatalf("err = %v, want duplicate code", err)
	}

	units, err := svc.ListUnits(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}

	// Soft delete hides from the default list but keeps the concept.
	if err := svc.DeactivateUnit(ctx, "mg"); err != nil {
		t.Fatal(err)
	}
	active, err := svc.ListUnits(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].Code != "ml" {
		t.Errorf("active units = %+v, want only ml", active)
	}
	all, err := svc.ListUnits(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all units = %d, deactivated concept must survive", len(all))
	}

	// Purge removes it for good.
	if err := svc.PurgeUnit(ctx, "mg"); err != nil {
		t.Fatal(err)
	}
	all, err = svc.ListUnits(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("units after purge = %d, want 1", len(all))
	}
}
