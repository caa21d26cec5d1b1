package bar

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer turns the composed segments into one output frame.
type Renderer interface {
	// Begin writes any stream preamble the consumer expects.
	Begin(w io.Writer) error
	// Frame writes one full bar line.
	Frame(w io.Writer, segs []Segment) error
}

// Output modes accepted by NewRenderer.
const (
	OutputPlain = "plain"
	OutputI3Bar = "i3bar"
	OutputPango = "pango"
)

// NewRenderer returns the line renderer for mode. The TUI mode is handled
// by the ui package and is not a Renderer.
func NewRenderer(mode string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case OutputPlain, "":
		return NewPlain(w), nil
	case OutputI3Bar:
		return I3Bar{}, nil
	case OutputPango:
		return Pango{}, nil
	default:
		return nil, fmt.Errorf("unknown output mode %q", mode)
	}
}

// Stream writes a frame whenever the table changes, until ctx is done.
func Stream(ctx context.Context, t *Table, r Renderer, w io.Writer) error {
	if err := r.Begin(w); err != nil {
		return fmt.Errorf("begin output: %w", err)
	}
	if err := r.Frame(w, t.Snapshot()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.Changed():
			if err := r.Frame(w, t.Snapshot()); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}

// Plain renders ANSI-styled text lines with lipgloss. Colors are dropped
// automatically when the writer is not a terminal.
type Plain struct {
	renderer  *lipgloss.Renderer
	Separator string
}

// NewPlain builds a Plain renderer whose color profile matches w.
func NewPlain(w io.Writer) Plain {
	return Plain{renderer: lipgloss.NewRenderer(w), Separator: " "}
}

func (Plain) Begin(io.Writer) error { return nil }

func (p Plain) Frame(w io.Writer, segs []Segment) error {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		parts = append(parts, StyleFor(p.renderer, seg).Render(seg.Text))
	}
	_, err := io.WriteString(w, strings.Join(parts, p.Separator)+"\n")
	return err
}

// StyleFor builds the lipgloss style for seg. A nil renderer uses the
// lipgloss default.
func StyleFor(r *lipgloss.Renderer, seg Segment) lipgloss.Style {
	var style lipgloss.Style
	if r != nil {
		style = r.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if seg.Padding > 0 {
		style = style.Padding(0, seg.Padding)
	}
	if seg.Foreground != "" {
		style = style.Foreground(lipgloss.Color(seg.Foreground))
	}
	if seg.Background != "" {
		style = style.Background(lipgloss.Color(seg.Background))
	}
	if seg.Urgent {
		style = style.Bold(true)
	}
	return style
}

// I3Bar speaks the i3bar/swaybar JSON protocol on stdout.
type I3Bar struct{}

type i3Block struct {
	Name       string `json:"name,omitempty"`
	FullText   string `json:"full_text"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Urgent     bool   `json:"urgent,omitempty"`
}

func (I3Bar) Begin(w io.Writer) error {
	_, err := io.WriteString(w, "{\"version\":1}\n[\n")
	return err
}

func (I3Bar) Frame(w io.Writer, segs []Segment) error {
	blocks := make([]i3Block, 0, len(segs))
	for _, seg := range segs {
		blocks = append(blocks, i3Block{
			Name:       seg.Name,
			FullText:   seg.Padded(),
			Color:      seg.Foreground,
			Background: seg.Background,
			Urgent:     seg.Urgent,
		})
	}
	line, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	_, err = w.Write(append(line, ',', '\n'))
	return err
}

// Pango writes one Pango markup line per frame, the format awesome and
// similar window managers read from a piped command.
type Pango struct{}

func (Pango) Begin(io.Writer) error { return nil }

func (Pango) Frame(w io.Writer, segs []Segment) error {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		text := html.EscapeString(seg.Padded())
		var attrs []string
		if seg.Foreground != "" {
			attrs = append(attrs, fmt.Sprintf(`foreground="%s"`, seg.Foreground))
		}
		if seg.Background != "" {
			attrs = append(attrs, fmt.Sprintf(`background="%s"`, seg.Background))
		}
		if len(attrs) == 0 {
			parts = append(parts, text)
			continue
		}
		parts = append(parts, "<span "+strings.Join(attrs, " ")+">"+text+"</span>")
	}
	_, err := io.WriteString(w, strings.Join(parts, " ")+"\n")
	return err
}
