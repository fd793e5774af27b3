package order_test

import (
	"context"
	"testing"
	"time"

	"YogaStore/internal/order"
)

func TestMemStoreListByUserNewestFirst(t *testing.T) {
	s := order.NewMemStore()
	ctx := context.Background()

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	for _, o := range []order.Order{
		{ID: "o_old", UserID: "u1", OrderDate: base},
		{ID: "o_new", UserID: "u1", OrderDate: base.Add(48 * time.Hour)},
		{ID: "o_mid", UserID: "u1", OrderDate: base.Add(24 * time.Hour)},
		{ID: "o_other", UserID: "u2", OrderDate: base.Add(72 * time.Hour)},
	} {
		if err := s.Create(ctx, o); err != nil {
			t.Fatalf("create %s: %v", o.ID, err)
		}
	}

	got, err := s.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"o_new", "o_mid", "o_old"}
	if len(got) != len(want) {
		t.Fatalf("got %d orders, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestMemStoreGetUnknown(t *testing.T) {
	s := order.NewMemStore()

	_, found, err := s.Get(context.Background(), "o_missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("unknown order reported found")
	}
}
