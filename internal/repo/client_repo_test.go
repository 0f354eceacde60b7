package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

func TestAddOrGetClient_SamePhoneOverwritesNames(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	id1, err := AddOrGetClient(ctx, db, "Ana", "Lopez", "04121234567")
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	id2, err := AddOrGetClient(ctx, db, "Anita", "López", "04121234567")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("same phone must map to one client: %d vs %d", id1, id2)
	}

	c, err := GetClient(ctx, db, id1)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if c.FirstName != "Anita" || c.LastName != "López" {
		t.Fatalf("names not overwritten: %+v", c)
	}

	var n int64
	db.Model(&domain.Client{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 client row, got %d", n)
	}
}

func TestAddOrGetClient_EmptyPhoneAlwaysInserts(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	a, err := AddOrGetClient(ctx, db, "Ana", "Lopez", "")
	if err != nil {
		t.Fatalf("add a: %v", err)
	}
	b, err := AddOrGetClient(ctx, db, "Ana", "Lopez", "  ")
	if err != nil {
		t.Fatalf("add b: %v", err)
	}
	if a == b {
		t.Fatalf("empty phones must not be deduplicated")
	}
	c, err := GetClient(ctx, db, b)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if c.Phone != nil {
		t.Fatalf("blank phone should be stored as NULL, got %q", *c.Phone)
	}
}

func TestAddOrGetClient_DifferentPhones(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	a, _ := AddOrGetClient(ctx, db, "Ana", "Lopez", "111")
	b, _ := AddOrGetClient(ctx, db, "Ana", "Lopez", "222")
	if a == 0 || b == 0 || a == b {
		t.Fatalf("expected two distinct ids, got %d and %d", a, b)
	}
}

func TestAddOrGetClient_StorageError(t *testing.T) {
	db := newTestDB(t, false) // no tables
	if _, err := AddOrGetClient(context.Background(), db, "Ana", "Lopez", "123"); err == nil {
		t.Fatalf("expected error without clients table")
	}
}

func TestFindClientByPhone(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	id, _ := AddOrGetClient(ctx, db, "Luis", "Perez", "0414")
	got, err := FindClientByPhone(ctx, db, " 0414 ")
	if err != nil || got.ID != id {
		t.Fatalf("FindClientByPhone = %+v, %v", got, err)
	}
	if _, err := FindClientByPhone(ctx, db, "9999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := FindClientByPhone(ctx, db, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blank phone should never match, got %v", err)
	}
}

func TestGetClient_NotFound(t *testing.T) {
	db := newTestDB(t, true)
	if _, err := GetClient(context.Background(), db, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
