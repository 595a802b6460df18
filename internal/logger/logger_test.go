package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "warn", false},
		{"debug", "debug", false},
		{"INFO", "info", false},
		{"loud", "", true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.String() != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "betopper.log")
	l, err := New(Options{Level: "error", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("component", "test").Info("generation finished", "purpose", "notes")
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"message":"generation finished"`, `"purpose":"notes"`, `"component":"test"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", 1)
	l.With("a", "b").Error("ignored")
}
