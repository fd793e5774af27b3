package auth_test

import (
	"context"
	"errors"
	"testing"

	"YogaStore/internal/auth"
)

func TestMemStoreCreateVerifyGet(t *testing.T) {
	s := auth.NewMemStore()
	ctx := context.Background()

	u := auth.User{
		ID:          "u_1",
		Email:       "Ann@Example.com",
		FirstName:   "Ann",
		LastName:    "Walker",
		PhoneNumber: "07700900000",
	}
	if err := s.Create(ctx, u, "password123"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Email comparisons are case-insensitive.
	got, err := s.Verify(ctx, "ann@example.com", "password123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != "u_1" || got.FirstName != "Ann" {
		t.Fatalf("verify returned %+v", got)
	}

	if _, err := s.Verify(ctx, "ann@example.com", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}

	byID, found, err := s.Get(ctx, "u_1")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if byID.PhoneNumber != "07700900000" {
		t.Fatalf("profile fields not stored: %+v", byID)
	}

	if _, found, _ := s.Get(ctx, "u_missing"); found {
		t.Fatalf("unknown id reported found")
	}
}

func TestMemStoreDuplicateEmail(t *testing.T) {
	s := auth.NewMemStore()
	ctx := context.Background()

	if err := s.Create(ctx, auth.User{ID: "u_1", Email: "a@example.com"}, "password123"); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := s.Create(ctx, auth.User{ID: "u_2", Email: "A@Example.com"}, "password456")
	if !errors.Is(err, auth.ErrEmailExists) {
		t.Fatalf("duplicate email err = %v", err)
	}
}
