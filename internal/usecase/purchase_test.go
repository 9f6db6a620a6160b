package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	testhelpers "github.com/Shanthi551/telecom-data-plan/internal/test"
)

func seedUser(t *testing.T, store *testhelpers.Store, email string, role model.Role) *model.User {
	t.Helper()
	u, err := store.UserRepo.Create(context.Background(), model.NewUser{FullName: email, Email: email, Role: role})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestPurchaseUseCaseRecordsExpiry(t *testing.T) {
	store := testhelpers.NewStore(model.DefaultPlans()...)
	uc := NewPurchaseUseCase(store.PlanRepo, store.PurchaseRepo)
	fixed := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.FixedZone("x", 3600))
	uc.now = func() time.Time { return fixed }

	user := seedUser(t, store, "buyer@example.com", model.RoleCustomer)
	p, err := uc.Purchase(context.Background(), user, 4)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if p.PlanName != "Unlimited Plan" || p.UserID != user.ID {
		t.Fatalf("unexpected purchase %+v", p)
	}
	if p.PurchasedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", p.PurchasedAt.Location())
	}
	if want := fixed.UTC().AddDate(0, 0, 30); !p.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, p.ExpiresAt)
	}
}

func TestPurchaseUseCaseIsNotIdempotent(t *testing.T) {
	store := testhelpers.NewStore(model.DefaultPlans()...)
	uc := NewPurchaseUseCase(store.PlanRepo, store.PurchaseRepo)
	ctx := context.Background()

	user := seedUser(t, store, "twice@example.com", model.RoleCustomer)
	for i := 0; i < 2; i++ {
		if _, err := uc.Purchase(ctx, user, 1); err != nil {
			t.Fatalf("purchase %d: %v", i, err)
		}
	}
	list, err := uc.ListPurchases(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected two purchases, got %d", len(list))
	}
}

func TestPurchaseUseCaseListIsNewestFirstAndScoped(t *testing.T) {
	store := testhelpers.NewStore(model.DefaultPlans()...)
	uc := NewPurchaseUseCase(store.PlanRepo, store.PurchaseRepo)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", model.RoleCustomer)
	bob := seedUser(t, store, "bob@example.com", model.RoleCustomer)

	base := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	for i, planID := range []int64{1, 2, 3} {
		at := base.Add(time.Duration(i) * time.Hour)
		uc.now = func() time.Time { return at }
		if _, err := uc.Purchase(ctx, alice, planID); err != nil {
			t.Fatalf("purchase: %v", err)
		}
	}
	if _, err := uc.Purchase(ctx, bob, 1); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	list, err := uc.ListPurchases(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 purchases for alice, got %d", len(list))
	}
	if list[0].PlanName != "Premium Plan" || list[2].PlanName != "Basic Plan" {
		t.Fatalf("expected newest first, got %s..%s", list[0].PlanName, list[2].PlanName)
	}
}

func TestPurchaseUseCaseErrors(t *testing.T) {
	store := testhelpers.NewStore(model.DefaultPlans()...)
	uc := NewPurchaseUseCase(store.PlanRepo, store.PurchaseRepo)
	ctx := context.Background()

	if _, err := uc.Purchase(ctx, nil, 1); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	user := seedUser(t, store, "c@example.com", model.RoleCustomer)
	if _, err := uc.Purchase(ctx, user, 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(store.PurchaseRepo.Items) != 0 {
		t.Fatal("failed purchase must not be stored")
	}
}
