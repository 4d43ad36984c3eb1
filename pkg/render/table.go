package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fulmenhq/techscan/pkg/analysis"
	"github.com/fulmenhq/techscan/pkg/ascii"
)

const (
	summaryTitle = "=== Scan Summary ==="
	statsTitle   = "=== Language Statistics ==="
)

func renderTable(w io.Writer, r *analysis.Report) error {
	_, err := io.WriteString(w, Table(r)+"\n")
	return err
}

// Table returns the summary and per-language tables for r.
func Table(r *analysis.Report) string {
	p := message.NewPrinter(language.English)
	classified := r.ClassifiedFileCount()

	summary := ascii.Table{
		Header: []string{"Item", "Value"},
		Rows: [][]string{
			{"Directory", r.Dir},
			{"Total Files", p.Sprintf("%d", r.TotalFileCount)},
			{"Language Files", p.Sprintf("%d", classified)},
			{"Excluded Files", p.Sprintf("%d", r.UnclassifiedFileCount())},
		},
	}

	stats := ascii.Table{
		Header: []string{"Language", "Files", "Percentage"},
		Align:  []ascii.Align{ascii.AlignLeft, ascii.AlignRight, ascii.AlignRight},
	}
	for _, item := range r.Languages {
		stats.Rows = append(stats.Rows, []string{
			item.Language.Name,
			p.Sprintf("%d", item.FileCount),
			Percentage(item.FileCount, classified),
		})
	}

	return strings.Join([]string{
		summaryTitle,
		summary.String(),
		"",
		statsTitle,
		stats.String(),
	}, "\n")
}

// Percentage formats count as a share of total with one decimal. A zero
// total yields "0.0%".
func Percentage(count, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}
