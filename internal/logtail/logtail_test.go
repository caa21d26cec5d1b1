package logtail

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/glance/internal/theme"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "glance.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
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
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  line
	}{
		{
			name:  "warn with attrs",
			input: "2026-10-18 14:32:15 WRN sample failed app=glance segment=weather",
			want:  line{Time: "2026-10-18 14:32:15", Level: "WRN", Message: "sample failed", Attrs: "app=glance segment=weather"},
		},
		{
			name:  "info without attrs",
			input: "2026-10-18 14:32:15 INF started",
			want:  line{Time: "2026-10-18 14:32:15", Level: "INF", Message: "started"},
		},
		{
			name:  "offset level",
			input: "2026-10-18 14:32:15 DBG-2 trace app=glance",
			want:  line{Time: "2026-10-18 14:32:15", Level: "DBG-2", Message: "trace", Attrs: "app=glance"},
		},
		{
			name:  "no timestamp",
			input: "panic: something",
			want:  line{Message: "panic: something"},
		},
		{
			name:  "bad timestamp",
			input: "2026-13-45 99:99:99 INF x",
			want:  line{Message: "2026-13-45 99:99:99 INF x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLine(tt.input); got != tt.want {
				t.Fatalf("parseLine(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorizer_PreservesTextWithoutColor(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	c := NewColorizer(r, theme.Get(theme.DefaultName))

	input := []string{
		"2026-10-18 14:32:15 ERR sample failed app=glance segment=garage",
		"",
		"stray output",
	}
	got := c.Lines(input)
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("Lines() = %q, want %q", got, input)
	}
}
