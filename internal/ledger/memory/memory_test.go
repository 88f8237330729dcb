package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"laporan/internal/core"
)

func TestStoreListReturnsCopy(t *testing.T) {
	s := New([]core.Transaction{{ID: "a", Title: "t"}})
	got, err := s.ListTransactions(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected list: %v err=%v", got, err)
	}
	got[0].Title = "changed"
	again, _ := s.ListTransactions(context.Background())
	if again[0].Title != "t" {
		t.Fatalf("store leaked internal slice")
	}
}

func TestNewFromFilesMissingIsEmpty(t *testing.T) {
	s, err := NewFromFiles(t.TempDir(), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := s.ListTransactions(context.Background())
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %d", len(got))
	}
}

func TestNewFromFilesParsesSeed(t *testing.T) {
	dir := t.TempDir()
	seed := `[
	  {"id": "1", "date": "2024-01-15", "title": "Salary", "category": "Income", "type": "income", "amount": 5000000},
	  {"date": "2024-02-01", "title": "Rent", "category": "Housing", "type": "expense", "amount": 1500000},
	  {"date": "kemarin", "title": "Broken", "category": "Misc", "type": "expense", "amount": 1},
	  {"date": "2024-02-02", "title": "Transfer", "category": "Misc", "type": "transfer", "amount": 1}
	]`
	if err := os.WriteFile(filepath.Join(dir, SeedFile), []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	s, err := NewFromFiles(dir, time.UTC)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, _ := s.ListTransactions(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions (unknown type skipped), got %d", len(got))
	}
	if got[0].ID != "1" || got[0].Type != core.Income || got[0].Date.Day() != 15 {
		t.Fatalf("unexpected first: %+v", got[0])
	}
	if got[1].ID == "" {
		t.Fatalf("expected generated id")
	}
	if got[2].HasValidDate() {
		t.Fatalf("broken date should be zero")
	}
}

func TestNewFromFilesRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SeedFile), []byte("{"), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, err := NewFromFiles(dir, time.UTC); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, SeedFile), []byte(body), 0o644); err != nil {
			t.Fatalf("write seed: %v", err)
		}
	}
	write(`[{"date":"2024-01-15","title":"Salary","type":"income","amount":1}]`)
	s, err := NewFromFiles(dir, time.UTC)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	write(`[{"date":"2024-01-15","title":"Salary","type":"income","amount":1},
	        {"date":"2024-02-01","title":"Rent","type":"expense","amount":2}]`)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, _ := s.ListTransactions(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions after reload, got %d", len(got))
	}

	write("{")
	if err := s.Reload(context.Background()); err == nil {
		t.Fatalf("expected error for malformed seed")
	}
	got, _ = s.ListTransactions(context.Background())
	if len(got) != 2 {
		t.Fatalf("failed reload must keep previous contents, got %d", len(got))
	}
}

func TestReloadWithoutSeedIsNoop(t *testing.T) {
	s := New([]core.Transaction{{ID: "a"}})
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := s.ListTransactions(context.Background())
	if len(got) != 1 {
		t.Fatalf("contents changed: %v", got)
	}
}
