package progress

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogRecordWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload_log.csv")
	log := NewLog(path)
	log.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	if err := log.Record(Result{IndexTitle: "Index:Foo", PageNumber: "1", PageTitle: "Page:Foo/1", Status: StatusSuccess}); err != nil {
		t.Fatal(err)
	}
	if err := log.Record(Result{IndexTitle: "Index:Foo", PageNumber: "2", Status: StatusFailure, Message: "not found"}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][2] != "index_title" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2025-06-01T12:00:00Z" {
		t.Errorf("timestamp = %q", rows[1][0])
	}
	if rows[1][1] != log.RunID() || rows[2][1] != log.RunID() {
		t.Errorf("rows carry wrong run id: %v", rows)
	}
	if rows[2][5] != StatusFailure || rows[2][6] != "not found" {
		t.Errorf("failure row = %v", rows[2])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	in := map[string]string{"1": "Page:Foo/1", "2": "Page:<Foo>/2"}

	if err := WriteJSON(path, in); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// HTML escaping must stay off so titles remain readable.
	if !strings.Contains(string(data), "Page:<Foo>/2") {
		t.Errorf("unexpected JSON: %s", data)
	}

	var out map[string]string
	if err := ReadJSON(path, &out); err != nil {
		t.Fatal(err)
	}
	if out["1"] != in["1"] || out["2"] != in["2"] {
		t.Errorf("round trip mismatch: %v", out)
	}
}
