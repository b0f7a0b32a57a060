package services

import (
	"context"
	"testing"

	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/schema"
)

func TestDirectoryService_CreateAttributesCurator(t *testing.T) {
	svc := &DirectoryService{DB: newServiceDB(t, &domain.SupportService{})}
	officer := domain.AuthContext{UserID: "po-1", Role: domain.RoleOfficer}

	entry, err := svc.Create(context.Background(), officer, schema.Data{
		"name":        "Bridges Housing Collective",
		"category":    domain.ServiceCategoryHousing,
		"description": "Transitional housing placement and landlord mediation.",
		"url":         "https://bridgeshousing.example.org",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.CreatedBy != "po-1" || entry.ID == "" {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestDirectoryService_ListFilters(t *testing.T) {
	svc := &DirectoryService{DB: newServiceDB(t, &domain.SupportService{})}
	ctx := context.Background()
	officer := domain.AuthContext{UserID: "po-1", Role: domain.RoleOfficer}

	seed := []schema.Data{
		{"name": "Bridges Housing Collective", "category": domain.ServiceCategoryHousing, "description": "Transitional housing placement."},
		{"name": "Open Door Counseling", "category": domain.ServiceCategoryCounseling, "description": "Individual and group counseling."},
		{"name": "Fresh Start Legal Aid", "category": domain.ServiceCategoryLegal, "description": "Record expungement clinics."},
	}
	for _, in := range seed {
		if _, err := svc.Create(ctx, officer, in); err != nil {
			t.Fatalf("seed %v: %v", in["name"], err)
		}
	}

	_, total, err := svc.List(ctx, schema.Data{})
	if err != nil || total != 3 {
		t.Fatalf("unfiltered total = %d err = %v", total, err)
	}

	items, total, err := svc.List(ctx, schema.Data{"category": domain.ServiceCategoryLegal})
	if err != nil || total != 1 || items[0].Name != "Fresh Start Legal Aid" {
		t.Fatalf("category filter = %+v total = %d err = %v", items, total, err)
	}

	// Keyword search folds case and matches descriptions too.
	_, total, err = svc.List(ctx, schema.Data{"search": "EXPUNGEMENT"})
	if err != nil || total != 1 {
		t.Fatalf("search total = %d err = %v", total, err)
	}
}
