package game

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecordManagerAddRecord(t *testing.T) {
	rm, err := NewRecordManager(nil)
	if err != nil {
		t.Fatalf("NewRecordManager(nil) error: %v", err)
	}

	if rm.BestScore() != 0 {
		t.Errorf("BestScore on empty: got %d", rm.BestScore())
	}

	rec, rank := rm.AddRecord(300, "park", false)
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("record ID is not a UUID: %q", rec.ID)
	}
	if rank != 0 {
		t.Errorf("first record rank: got %d, want 0", rank)
	}

	_, rank = rm.AddRecord(500, "asteroid", true)
	if rank != 0 {
		t.Errorf("higher score rank: got %d, want 0", rank)
	}
	_, rank = rm.AddRecord(100, "park", false)
	if rank != 2 {
		t.Errorf("lower score rank: got %d, want 2", rank)
	}

	if rm.BestScore() != 500 {
		t.Errorf("BestScore: got %d, want 500", rm.BestScore())
	}

	top := rm.TopRecords(2)
	if len(top) != 2 || top[0].Score != 500 || top[1].Score != 300 {
		t.Errorf("TopRecords(2): got %+v", top)
	}
}

func TestRecordManagerKeepsTopScores(t *testing.T) {
	rm, _ := NewRecordManager(nil)

	for i := 0; i < MaxRecords; i++ {
		rm.AddRecord(100+i, "park", false)
	}
	if _, rank := rm.AddRecord(1, "park", false); rank != -1 {
		t.Errorf("score below the table should not rank, got %d", rank)
	}
	if got := len(rm.TopRecords(100)); got != MaxRecords {
		t.Errorf("records kept: got %d, want %d", got, MaxRecords)
	}
}

func TestRecordManagerPersistence(t *testing.T) {
	gdataManager := openTestStorage(t, "test_records")

	rm1, err := NewRecordManager(gdataManager)
	if err != nil {
		t.Fatalf("NewRecordManager error: %v", err)
	}
	rm1.AddRecord(420, "park", true)
	rm1.MarkStageCleared("park")
	rm1.MarkStageCleared("park")

	rm2, err := NewRecordManager(gdataManager)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if rm2.BestScore() != 420 {
		t.Errorf("BestScore after reload: got %d, want 420", rm2.BestScore())
	}
	if !rm2.IsStageCleared("park") {
		t.Error("park should be cleared after reload")
	}
	if rm2.IsStageCleared("asteroid") {
		t.Error("asteroid should not be cleared")
	}
}

func TestRecordManagerCorruptData(t *testing.T) {
	gdataManager := openTestStorage(t, "test_records_corrupt")
	if err := gdataManager.SaveObjectProp(recordsObject, recordsProperty, []byte("records: [")); err != nil {
		t.Fatal(err)
	}

	rm, err := NewRecordManager(gdataManager)
	if err == nil {
		t.Error("expected error for corrupt records")
	}
	if rm == nil || rm.BestScore() != 0 {
		t.Error("corrupt data should fall back to empty records")
	}
}
