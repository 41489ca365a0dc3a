// Package report renders extraction results as the plain-text summary printed
// to standard output.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/brandcolor/internal/imaging"
)

// Report holds everything printed for one run.
type Report struct {
	BannerPath string
	LogoPath   string
	Background imaging.Result
	Highlight  imaging.Highlight
}

// Write prints r as four lines:
//
//	Processing <banner> and <logo>
//	Banner Background: <hex or message>
//	Logo Highlight Candidate: <hex or message>
//	Logo Palette Candidates: ['#rrggbb', ...]
func Write(w io.Writer, r Report) error {
	lines := []string{
		fmt.Sprintf("Processing %s and %s", r.BannerPath, r.LogoPath),
		fmt.Sprintf("Banner Background: %s", r.Background),
		fmt.Sprintf("Logo Highlight Candidate: %s", r.Highlight.Best),
		fmt.Sprintf("Logo Palette Candidates: %s", FormatList(r.Highlight.Candidates)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// FormatList renders items as a bracketed, single-quoted list, e.g.
// ['#ff0000', '#00ff00']. An empty or nil slice renders as [].
func FormatList(items []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(item)
		sb.WriteByte('\'')
	}
	sb.WriteByte(']')
	return sb.String()
}
