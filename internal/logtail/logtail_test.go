package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParse(t *testing.T) {
	line := `time="2026-02-26T10:30:00Z" level=info msg="app status toggled" app=app-1 status=paused`
	e := Parse(line)

	if want := time.Date(2026, 2, 26, 10, 30, 0, 0, time.UTC); !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if e.Level != "info" || e.Message != "app status toggled" {
		t.Fatalf("Level/Message = %q/%q", e.Level, e.Message)
	}
	want := map[string]string{"app": "app-1", "status": "paused"}
	if !reflect.DeepEqual(e.Fields, want) {
		t.Fatalf("Fields = %v, want %v", e.Fields, want)
	}
}

func TestParse_EscapedQuotes(t *testing.T) {
	e := Parse(`level=warn msg="copy \"logs\" failed" error="no clipboard"`)
	if e.Message != `copy "logs" failed` {
		t.Fatalf("Message = %q", e.Message)
	}
	if e.Fields["error"] != "no clipboard" {
		t.Fatalf("error field = %q", e.Fields["error"])
	}
}

func TestParse_PlainLine(t *testing.T) {
	e := Parse("panic: something odd")
	if e.Message != "panic: something odd" || e.Level != "" || len(e.Fields) != 0 {
		t.Fatalf("Parse(plain) = %+v", e)
	}
}

func TestParse_EscapedNewlineAndBareKey(t *testing.T) {
	e := Parse(`level=error msg="line one\nline two" retry`)
	if e.Message != "line one\nline two" {
		t.Fatalf("Message = %q", e.Message)
	}
	if v, ok := e.Fields["retry"]; !ok || v != "" {
		t.Fatalf("retry field = %q, %v; want present and empty", v, ok)
	}
}

func TestParse_UnterminatedQuoteKeepsDecodedPrefix(t *testing.T) {
	e := Parse(`level=warn app=app-1 msg="cut off`)
	if e.Level != "warn" || e.Fields["app"] != "app-1" {
		t.Fatalf("Parse(truncated) = %+v", e)
	}
}
