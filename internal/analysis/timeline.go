// Package analysis builds the financial timeline from stored filings and
// computes trends, ratios, performance changes, and the composite health
// score over it.
package analysis

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avikram/filingscope/pkg/models"
	"github.com/avikram/filingscope/pkg/utils"
)

// BuildTimeline projects stored records onto the company timeline, sorted
// ascending by filing date. Dates that fail to parse become the zero time
// and sort first; ties break by filing ID so repeated builds produce the
// same order.
func BuildTimeline(records []models.FilingRecord) models.Timeline {
	rows := make(models.Timeline, 0, len(records))

	for _, rec := range records {
		row := models.TimelineRow{
			FilingID:    rec.ID,
			FormType:    rec.FormType,
			CompanyName: rec.CompanyName,
			Ticker:      rec.Ticker,
			Metrics:     rec.Metrics,
		}
		if rec.FilingDate != "" {
			t, err := utils.ParseDate(rec.FilingDate)
			if err != nil {
				log.Debug().Str("filing_id", rec.ID).Str("filing_date", rec.FilingDate).Msg("unparseable filing date")
			} else {
				row.FilingDate = t
			}
		}
		if rec.PeriodOfReport != "" {
			if t, err := utils.ParseDate(rec.PeriodOfReport); err == nil {
				row.PeriodOfReport = t
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FilingDate.Equal(rows[j].FilingDate) {
			return rows[i].FilingID < rows[j].FilingID
		}
		return rows[i].FilingDate.Before(rows[j].FilingDate)
	})

	return rows
}

// dateString formats a timeline date, empty for the zero time.
func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return utils.FormatDate(t)
}
