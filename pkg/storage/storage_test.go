package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

type report struct {
	Score int    `json:"score" yaml:"score"`
	URL   string `json:"url" yaml:"url"`
}

func TestWriteReportCreatesDirectories(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "reports", "nested", "r.json")

	if err := s.WriteReport(path, report{Score: 87, URL: "https://example.com"}, FormatJSON); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	if !s.HasFile(path) {
		t.Fatal("report file not written")
	}
	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"score": 87`) {
		t.Errorf("unexpected JSON: %s", data)
	}

	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != int64(len(data)) {
		t.Errorf("SizeBytes = %d, want %d", stats.SizeBytes, len(data))
	}
}

func TestMarshalFormats(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{"default is json", "", `"url": "https://example.com"`, false},
		{"json", "JSON", `"score": 1`, false},
		{"yaml", "yaml", "score: 1", false},
		{"yml alias", "yml", "url: https://example.com", false},
		{"unknown", "xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(report{Score: 1, URL: "https://example.com"}, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Marshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !strings.Contains(string(data), tt.want) {
				t.Errorf("Marshal() = %s, want substring %q", data, tt.want)
			}
		})
	}
}

func TestUnmarshalAndFormatFromPath(t *testing.T) {
	var r report
	if err := Unmarshal([]byte("score: 5\nurl: x\n"), FormatFromPath("data.yml"), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Score != 5 || r.URL != "x" {
		t.Errorf("Unmarshal() = %+v", r)
	}
	if got := FormatFromPath("data.JSON"); got != FormatJSON {
		t.Errorf("FormatFromPath() = %q, want json", got)
	}
	if err := Unmarshal([]byte("{not json"), FormatJSON, &r); err == nil {
		t.Error("Unmarshal() error = nil for malformed JSON")
	}
}

func TestReadFileMissing(t *testing.T) {
	s := &Storage{}
	if _, err := s.ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadFile() error = nil, want error")
	}
}
