package sqlite

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/eamarbiyout/storebot/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "storebot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("state roundtrip", func(t *testing.T) {
		got, err := store.GetState(ctx, 42, "calc")
		if err != nil {
			t.Fatalf("GetState failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil state before first put, got %q", got)
		}

		blob := []byte(`{"step":3}`)
		if err := store.PutState(ctx, 42, "calc", blob); err != nil {
			t.Fatalf("PutState failed: %v", err)
		}

		got, err = store.GetState(ctx, 42, "calc")
		if err != nil {
			t.Fatalf("GetState failed: %v", err)
		}
		if !bytes.Equal(got, blob) {
			t.Errorf("GetState = %q, want %q", got, blob)
		}

		// Other namespaces of the same conversation stay independent.
		got, err = store.GetState(ctx, 42, "form")
		if err != nil {
			t.Fatalf("GetState failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil state in other namespace, got %q", got)
		}
	})

	t.Run("put replaces previous state", func(t *testing.T) {
		if err := store.PutState(ctx, 7, "calc", []byte("one")); err != nil {
			t.Fatalf("PutState failed: %v", err)
		}
		if err := store.PutState(ctx, 7, "calc", []byte("two")); err != nil {
			t.Fatalf("PutState failed: %v", err)
		}
		got, err := store.GetState(ctx, 7, "calc")
		if err != nil {
			t.Fatalf("GetState failed: %v", err)
		}
		if string(got) != "two" {
			t.Errorf("GetState = %q, want %q", got, "two")
		}
	})

	t.Run("clear state", func(t *testing.T) {
		if err := store.PutState(ctx, 9, "calc", []byte("x")); err != nil {
			t.Fatalf("PutState failed: %v", err)
		}
		if err := store.ClearState(ctx, 9, "calc"); err != nil {
			t.Fatalf("ClearState failed: %v", err)
		}
		got, err := store.GetState(ctx, 9, "calc")
		if err != nil {
			t.Fatalf("GetState failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil state after clear, got %q", got)
		}

		// Clearing again is not an error.
		if err := store.ClearState(ctx, 9, "calc"); err != nil {
			t.Errorf("ClearState on absent state failed: %v", err)
		}
	})

	t.Run("orders seed and lookup", func(t *testing.T) {
		orders := []models.Order{
			{Code: "EB-2510-001", Status: "قيد التجهيز", ETA: "خلال 48 ساعة", Note: "بانتظار تأكيد القياسات."},
			{Code: "EB-2510-002", Status: "تم التسليم", ETA: "-", Note: "سُلّم يوم 24/10/2025."},
		}
		if err := store.SeedOrders(ctx, orders); err != nil {
			t.Fatalf("SeedOrders failed: %v", err)
		}

		got, err := store.GetOrder(ctx, "EB-2510-001")
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got == nil || got.Status != "قيد التجهيز" {
			t.Errorf("GetOrder = %+v, want seeded order", got)
		}

		missing, err := store.GetOrder(ctx, "EB-0000-000")
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if missing != nil {
			t.Errorf("Expected nil for unknown code, got %+v", missing)
		}

		// Re-seeding updates in place.
		orders[0].Status = "تم التسليم"
		if err := store.SeedOrders(ctx, orders); err != nil {
			t.Fatalf("SeedOrders (again) failed: %v", err)
		}
		got, err = store.GetOrder(ctx, "EB-2510-001")
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got.Status != "تم التسليم" {
			t.Errorf("GetOrder status = %q, want updated status", got.Status)
		}
	})

	t.Run("offers are listed by code", func(t *testing.T) {
		for _, o := range []models.Offer{
			{Code: "6600002", Size: "60x60", FileID: "f2"},
			{Code: "6600001", Size: "60x60", FileID: "f1"},
			{Code: "7700001", Size: "other", FileID: "f3"},
		} {
			if err := store.PutOffer(ctx, o); err != nil {
				t.Fatalf("PutOffer failed: %v", err)
			}
		}

		offers, err := store.ListOffers(ctx, "60x60")
		if err != nil {
			t.Fatalf("ListOffers failed: %v", err)
		}
		if len(offers) != 2 {
			t.Fatalf("ListOffers returned %d offers, want 2", len(offers))
		}
		if offers[0].Code != "6600001" || offers[1].Code != "6600002" {
			t.Errorf("ListOffers order = %s, %s; want 6600001, 6600002", offers[0].Code, offers[1].Code)
		}
		if offers[0].CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		// Re-indexing the same code refreshes the file id.
		if err := store.PutOffer(ctx, models.Offer{Code: "6600001", Size: "60x60", FileID: "f1b"}); err != nil {
			t.Fatalf("PutOffer (again) failed: %v", err)
		}
		offers, err = store.ListOffers(ctx, "60x60")
		if err != nil {
			t.Fatalf("ListOffers failed: %v", err)
		}
		if offers[0].FileID != "f1b" {
			t.Errorf("FileID = %q, want refreshed f1b", offers[0].FileID)
		}
	})
}
