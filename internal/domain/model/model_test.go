package model

import (
	"testing"
	"time"
)

func TestRoleValues(t *testing.T) {
	cases := []struct {
		name  string
		got   Role
		value string
	}{
		{"customer", RoleCustomer, "Customer"},
		{"analyst", RoleAnalyst, "Analyst"},
		{"admin", RoleAdmin, "Admin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}
}

func TestRoleValidRejectsUnknown(t *testing.T) {
	for _, r := range []Role{"", "admin", "Superuser"} {
		if r.Valid() {
			t.Fatalf("expected %q to be invalid", r)
		}
	}
}

func TestDefaultPlansOrder(t *testing.T) {
	plans := DefaultPlans()
	want := []string{"Basic Plan", "Standard Plan", "Premium Plan", "Unlimited Plan"}
	if len(plans) != len(want) {
		t.Fatalf("expected %d plans, got %d", len(want), len(plans))
	}
	for i, name := range want {
		if plans[i].Name != name {
			t.Fatalf("plan %d: expected %s, got %s", i, name, plans[i].Name)
		}
	}
	if !plans[3].Unlimited() {
		t.Fatal("expected last tier to be unlimited")
	}
	if plans[0].Unlimited() {
		t.Fatal("basic tier must not be unlimited")
	}
}

func TestPlanSatisfiesInclusiveBounds(t *testing.T) {
	p := Plan{Price: 399, ValidityDays: 28, DataLimitGB: 30}
	if !p.Satisfies(Requirements{Budget: 399, DataNeededGB: 30, ValidityNeeded: 28}) {
		t.Fatal("expected exact bounds to qualify")
	}
	if p.Satisfies(Requirements{Budget: 398.99, DataNeededGB: 30, ValidityNeeded: 28}) {
		t.Fatal("expected budget below price to fail")
	}
	if p.Satisfies(Requirements{Budget: 500, DataNeededGB: 31, ValidityNeeded: 28}) {
		t.Fatal("expected data above limit to fail")
	}
	if p.Satisfies(Requirements{Budget: 500, DataNeededGB: 1, ValidityNeeded: 29}) {
		t.Fatal("expected validity above plan to fail")
	}
}

func TestExpiryForUsesCalendarDays(t *testing.T) {
	start := time.Date(2025, time.January, 31, 10, 30, 0, 0, time.UTC)
	got := ExpiryFor(start, 28)
	want := time.Date(2025, time.February, 28, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Fatal("session should still be valid")
	}
	if !s.Expired(now.Add(time.Minute)) {
		t.Fatal("session should expire at its deadline")
	}
}

func TestUserSummary(t *testing.T) {
	u := User{ID: 7, FullName: "Jane Roe", Email: "jane@example.com", Role: RoleAnalyst, PasswordHash: "x"}
	s := u.Summary()
	if s.ID != 7 || s.FullName != "Jane Roe" || s.Email != "jane@example.com" || s.Role != RoleAnalyst {
		t.Fatalf("unexpected summary %+v", s)
	}
}
