package cli

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// renderSchedulePDF writes a printable day-by-day listing of rules to
// outputPath.
func renderSchedulePDF(title string, rules schedule.Set, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)
	days := schedule.ExpandDays(rules)
	total := schedule.CountSet(rules)

	m.AddRow(14,
		text.NewCol(12, title, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%s across %d days", slotCount(total), len(days)), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	for i, r := range rules {
		m.AddRow(6,
			text.NewCol(10, fmt.Sprintf("%d. %s", i+1, schedule.FormatRule(r)), props.Text{Size: 9}),
			text.NewCol(2, slotCount(schedule.CountOccurrences(r)), props.Text{
				Size:  9,
				Align: align.Right,
				Color: &pdfMutedColor,
			}),
		)
	}
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	for _, ds := range days {
		slots := make([]string, len(ds.Slots))
		for i, s := range ds.Slots {
			slots[i] = schedule.FormatTimeSlot(s)
		}
		m.AddRow(6,
			text.NewCol(4, schedule.FormatDate(ds.Date), props.Text{
				Style: fontstyle.Bold,
				Size:  9,
				Color: &pdfHeaderColor,
			}),
			text.NewCol(8, strings.Join(slots, ", "), props.Text{Size: 9}),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(9, "Total", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, quotaLine(total), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
