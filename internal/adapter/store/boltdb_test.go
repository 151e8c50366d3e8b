package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"circuitdoc/config"
	"circuitdoc/internal/domain"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRecord(path string) domain.Record {
	return domain.Record{
		Path:    path,
		Hash:    "abc123",
		ModTime: 1700000000,
		Result: domain.ParseResult{
			CircuitName: "qc",
			QubitNum:    2,
			Gates: []domain.GateInvocation{
				{Name: "Hadamard", Qubits: []int{0}},
				{Name: "RX", Qubits: []int{1}, Params: []string{"0.5"}},
			},
		},
		Document: domain.Document{Blocks: []domain.Block{
			{Heading: "### Hadamard Gate on 0", Explanation: "Hadamard puts qubit 0 into superposition."},
		}},
		ExplainedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBoltStore_PutGet(t *testing.T) {
	st := openTestStore(t)

	rec := sampleRecord("/src/bell.py")
	if err := st.PutRecord(rec); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetRecord(rec.Path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hash != rec.Hash {
		t.Errorf("expected hash %s, got %s", rec.Hash, got.Hash)
	}
	if got.Result.CircuitName != "qc" || got.Result.QubitNum != 2 {
		t.Errorf("unexpected result header: %+v", got.Result)
	}
	if len(got.Result.Gates) != 2 {
		t.Fatalf("expected 2 gates, got %d", len(got.Result.Gates))
	}
	if got.Result.Gates[1].Params[0] != "0.5" {
		t.Errorf("expected RX param 0.5, got %v", got.Result.Gates[1].Params)
	}
	if got.Document.Markdown() != rec.Document.Markdown() {
		t.Errorf("document mismatch:\n%s\nvs\n%s", got.Document.Markdown(), rec.Document.Markdown())
	}
	if !got.ExplainedAt.Equal(rec.ExplainedAt) {
		t.Errorf("expected ExplainedAt %v, got %v", rec.ExplainedAt, got.ExplainedAt)
	}
}

func TestBoltStore_NotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.GetRecord("/missing.py")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBoltStore_ListAndDelete(t *testing.T) {
	st := openTestStore(t)

	recs := []domain.Record{
		sampleRecord("/src/c.py"),
		sampleRecord("/src/a.py"),
		sampleRecord("/src/b.py"),
	}
	if err := st.PutRecords(recs); err != nil {
		t.Fatal(err)
	}

	list, err := st.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	for i, want := range []string{"/src/a.py", "/src/b.py", "/src/c.py"} {
		if list[i].Path != want {
			t.Errorf("record %d: expected %s, got %s", i, want, list[i].Path)
		}
	}

	if err := st.DeleteRecord("/src/b.py"); err != nil {
		t.Fatal(err)
	}
	list, err = st.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 records after delete, got %d", len(list))
	}
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	st, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.PutRecord(sampleRecord("/src/a.py")); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if _, err := st.GetRecord("/src/a.py"); err != nil {
		t.Errorf("expected record to survive reopen, got %v", err)
	}
}

func TestCheckMigration_FreshStore(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()

	res, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.NeedsMigration {
		t.Error("expected fresh store to need migration")
	}
	if res.NeedsRebuild {
		t.Error("fresh store should not need rebuild")
	}

	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}
	res, err = st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.NeedsMigration || res.NeedsRebuild {
		t.Errorf("expected no migration after Migrate, got %+v", res)
	}
}

func TestPrepare_ConstructorChangeClearsHistory(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()

	reason, err := st.Prepare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if reason != "" {
		t.Errorf("expected no clear on first prepare, got %q", reason)
	}
	if err := st.PutRecord(sampleRecord("/src/a.py")); err != nil {
		t.Fatal(err)
	}

	reason, err = st.Prepare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if reason != "" {
		t.Errorf("expected unchanged config to keep history, got %q", reason)
	}

	cfg.Scan.Constructor = "Circuit"
	reason, err = st.Prepare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if reason == "" {
		t.Error("expected a reason when history is cleared")
	}

	list, err := st.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected history to be cleared, got %d records", len(list))
	}

	info, err := st.GetSchemaInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != CurrentSchemaVersion {
		t.Errorf("expected schema v%d, got v%d", CurrentSchemaVersion, info.Version)
	}
	if info.ConfigHash != ComputeConfigHash(cfg) {
		t.Error("expected config hash to follow the new constructor")
	}
}

func TestCheckMigration_NewerSchema(t *testing.T) {
	st := openTestStore(t)
	cfg := config.DefaultConfig()

	if err := st.SetSchemaInfo(&SchemaInfo{Version: CurrentSchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}

	res, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.NeedsRebuild {
		t.Error("expected rebuild for a newer schema version")
	}
}

func TestComputeConfigHash(t *testing.T) {
	a := config.DefaultConfig()
	b := config.DefaultConfig()
	b.Scan.Jobs = 8
	b.Output.Format = "text"

	if ComputeConfigHash(a) != ComputeConfigHash(b) {
		t.Error("settings that do not affect results should not change the hash")
	}

	b.Scan.Constructor = "Circuit"
	if ComputeConfigHash(a) == ComputeConfigHash(b) {
		t.Error("expected constructor change to change the hash")
	}
}
