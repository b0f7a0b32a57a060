package repo

import (
	"context"
	"testing"

	"github.com/secondchance/connect-backend/internal/domain"
)

func TestServiceListing_CategoryFilterAndNameOrder(t *testing.T) {
	db := newRepoDB(t, &domain.SupportService{})
	ctx := context.Background()

	add := func(name, category, desc string) {
		if _, err := CreateService(ctx, db, &domain.SupportService{
			Name:        name,
			Category:    category,
			Description: desc,
			CreatedBy:   "officer-1",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	add("Zenith Counseling", domain.ServiceCategoryCounseling, "Individual and group counseling sessions.")
	add("Anchor Housing", domain.ServiceCategoryHousing, "Transitional housing placement.")
	add("Bridge Legal Aid", domain.ServiceCategoryLegal, "Record expungement assistance.")

	all, err := ListServicesPage(ctx, db, ServiceFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Anchor Housing" || all[2].Name != "Zenith Counseling" {
		t.Fatalf("order = %+v", all)
	}

	housing, err := ListServicesPage(ctx, db, ServiceFilter{Category: domain.ServiceCategoryHousing}, 0, 10)
	if err != nil || len(housing) != 1 {
		t.Fatalf("housing = %d err = %v", len(housing), err)
	}
}

func TestServiceListing_SearchMatchesNameAndDescription(t *testing.T) {
	db := newRepoDB(t, &domain.SupportService{})
	ctx := context.Background()

	CreateService(ctx, db, &domain.SupportService{
		Name:        "Bridge Legal Aid",
		Category:    domain.ServiceCategoryLegal,
		Description: "Record expungement assistance.",
		CreatedBy:   "officer-1",
	})
	CreateService(ctx, db, &domain.SupportService{
		Name:        "Anchor Housing",
		Category:    domain.ServiceCategoryHousing,
		Description: "Transitional housing and legal referrals.",
		CreatedBy:   "officer-1",
	})

	got, err := ListServicesPage(ctx, db, ServiceFilter{Search: "%legal%"}, 0, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// Matches name on one entry and description on the other.
	if len(got) != 2 {
		t.Fatalf("search results = %d, want 2", len(got))
	}

	total, err := CountServices(ctx, db, ServiceFilter{Search: "%expungement%"})
	if err != nil || total != 1 {
		t.Fatalf("count = %d err = %v", total, err)
	}
}
