package journal

import (
	"path/filepath"
	"testing"
)

func TestObtainCompleteRoundTrip(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = j.Close() }()

	e := j.Obtain("192.0.2.10", "Sitemap0.HTML")
	e.Resolved = "sitemap0.html"
	e.Size = 500
	e.Outcome = "ok"
	e.Complete()

	recs, err := j.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}

	rec := recs[0]
	if rec.Client != "192.0.2.10" {
		t.Errorf("Client = %s", rec.Client)
	}
	if rec.Request != "Sitemap0.HTML" || rec.Resolved != "sitemap0.html" {
		t.Errorf("Request/Resolved = %s/%s", rec.Request, rec.Resolved)
	}
	if rec.Size != 500 {
		t.Errorf("Size = %d, want 500", rec.Size)
	}
	if rec.Outcome != "ok" {
		t.Errorf("Outcome = %s, want ok", rec.Outcome)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = j.Close() }()

	e := j.Obtain("192.0.2.10", "sitemap0.html")
	e.Outcome = "ok"
	e.Complete()
	e.Complete()
	e.Complete()

	recs, err := j.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d after repeated Complete, want 1", len(recs))
	}
}

func TestRecordsOrderedByTime(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = j.Close() }()

	for _, name := range []string{"a.html", "b.html", "c.html"} {
		e := j.Obtain("192.0.2.10", name)
		e.Outcome = "not_found"
		e.Complete()
	}

	recs, err := j.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3", len(recs))
	}
	if recs[0].Request != "a.html" || recs[2].Request != "c.html" {
		t.Errorf("records out of order: %s, %s, %s", recs[0].Request, recs[1].Request, recs[2].Request)
	}
}

func TestNilJournalIsNoOp(t *testing.T) {
	j, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	if j != nil {
		t.Fatal("Open(\"\") should return a nil journal")
	}

	// All operations must be safe on the disabled journal
	e := j.Obtain("192.0.2.10", "sitemap0.html")
	e.Complete()
	if err := j.Close(); err != nil {
		t.Errorf("Close on nil journal: %v", err)
	}
	if recs, err := j.Records(); err != nil || recs != nil {
		t.Errorf("Records on nil journal = %v, %v", recs, err)
	}
}
