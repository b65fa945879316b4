package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "trades.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndList(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Time: base, Direction: "buy", TokenAddress: "0x1111", AmountIn: "0.1", TxHash: "0xaaa", Status: "success", GasUsed: 150000},
		{Time: base.Add(time.Minute), Direction: "approve", TokenAddress: "0x1111", TxHash: "0xbbb", Status: "approved", GasUsed: 46000},
		{Time: base.Add(2 * time.Minute), Direction: "sell", TokenAddress: "0x1111", AmountIn: "50000", TxHash: "0xccc", Status: "success", GasUsed: 180000},
	}
	for _, e := range entries {
		if err := j.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := j.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].TxHash != "0xccc" || got[2].TxHash != "0xaaa" {
		t.Errorf("order = [%s %s %s], want newest first", got[0].TxHash, got[1].TxHash, got[2].TxHash)
	}
	if got[0].Direction != "sell" || got[0].GasUsed != 180000 {
		t.Errorf("entry = %+v", got[0])
	}
}

func TestListLimit(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := Entry{
			Time:         base.Add(time.Duration(i) * time.Second),
			Direction:    "buy",
			TokenAddress: "0x1111",
			TxHash:       "0xaaa",
			Status:       "success",
		}
		if err := j.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := j.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestRecordFillsTime(t *testing.T) {
	j := openTestJournal(t)

	if err := j.Record(Entry{Direction: "buy", TxHash: "0xdef", Status: "success"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := j.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got[0].Time.IsZero() {
		t.Error("expected Record to stamp entry time")
	}
}

func TestCount(t *testing.T) {
	j := openTestJournal(t)
	if n, _ := j.Count(); n != 0 {
		t.Fatalf("Count = %d, want 0", n)
	}
	j.Record(Entry{Direction: "buy", TxHash: "0x1", Status: "success"})
	j.Record(Entry{Direction: "sell", TxHash: "0x2", Status: "success"})
	n, err := j.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}
