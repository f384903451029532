package db

import (
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	return db
}

func TestCreateAndFinishRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.CreateRun("/data/docs", 5, "config.yaml")
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if runID == 0 {
		t.Error("CreateRun() returned 0 run ID")
	}

	if err := db.FinishRun(runID, 4, 1); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns() returned %d runs, want 1", len(runs))
	}

	run := runs[0]
	if run.Source != "/data/docs" {
		t.Errorf("run.Source = %q, want /data/docs", run.Source)
	}
	if run.FileCount != 5 {
		t.Errorf("run.FileCount = %d, want 5", run.FileCount)
	}
	if run.SuccessCount != 4 || run.FailedCount != 1 {
		t.Errorf("run counts = %d/%d, want 4/1", run.SuccessCount, run.FailedCount)
	}
	if !run.FinishedAt.Valid {
		t.Error("run.FinishedAt not set after FinishRun()")
	}
	if run.ConfigPath != "config.yaml" {
		t.Errorf("run.ConfigPath = %q, want config.yaml", run.ConfigPath)
	}
}

func TestListRuns_NewestFirstAndLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := db.CreateRun("source", 1, "")
		if err != nil {
			t.Fatalf("CreateRun() error = %v", err)
		}
		last = id
	}

	runs, err := db.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("ListRuns(3) returned %d runs, want 3", len(runs))
	}
	if runs[0].RunID != last {
		t.Errorf("ListRuns()[0].RunID = %d, want newest %d", runs[0].RunID, last)
	}
}

func TestInsertAndListRunDocuments(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.CreateRun("files", 2, "")
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	docs := []Document{
		{
			RunID:            runID,
			RecordID:         "rec-1",
			FilePath:         "/docs/a.txt",
			DocumentType:     "Text Document",
			ExtractionMethod: "direct_read",
			WordCount:        100,
			QualityScore:     72.5,
			Category:         "General Document",
			Language:         "en",
			Success:          true,
			RecordPath:       "/docs/a_metadata.json",
		},
		{
			RunID:        runID,
			RecordID:     "rec-2",
			FilePath:     "/docs/b.pdf",
			Success:      false,
			ErrorMessage: "extract: no extractable text in pdf",
		},
	}
	for _, d := range docs {
		if _, err := db.InsertDocument(d); err != nil {
			t.Fatalf("InsertDocument() error = %v", err)
		}
	}

	got, err := db.ListRunDocuments(runID)
	if err != nil {
		t.Fatalf("ListRunDocuments() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListRunDocuments() returned %d docs, want 2", len(got))
	}

	// Processing order preserved.
	if got[0].RecordID != "rec-1" || got[1].RecordID != "rec-2" {
		t.Errorf("document order = %q, %q; want rec-1, rec-2", got[0].RecordID, got[1].RecordID)
	}
	if got[0].QualityScore != 72.5 {
		t.Errorf("QualityScore = %v, want 72.5", got[0].QualityScore)
	}
	if got[1].Success {
		t.Error("failed document recorded as success")
	}
	if got[1].ErrorMessage == "" {
		t.Error("failed document missing error message")
	}
}

func TestListRunDocuments_ForeignKeyCascade(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.CreateRun("files", 1, "")
	if _, err := db.InsertDocument(Document{RunID: runID, RecordID: "r", FilePath: "/x.txt", Success: true}); err != nil {
		t.Fatalf("InsertDocument() error = %v", err)
	}

	if _, err := db.Exec("DELETE FROM runs WHERE run_id = ?", runID); err != nil {
		t.Fatalf("delete run error = %v", err)
	}

	docs, err := db.ListRunDocuments(runID)
	if err != nil {
		t.Fatalf("ListRunDocuments() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("documents survived run deletion: %v", docs)
	}
}
