package sla

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"sla.service/internal/core/model"
)

type groupKey struct {
	workerID string
	workDate string
}

// Aggregate groups records by (worker, date) and sums their minutes. Rows are
// ordered by date descending, then worker ascending. Records without a worker,
// with an unparseable date or with negative minutes are skipped. The input
// slice is never modified.
func Aggregate(records []model.DurationRecord) []model.AggregatedRow {
	totals := make(map[groupKey]int64)
	for _, r := range records {
		if !wellFormed(r) {
			continue
		}
		totals[groupKey{workerID: r.WorkerID, workDate: r.WorkDate}] += r.DurationMinutes
	}

	rows := make([]model.AggregatedRow, 0, len(totals))
	for k, minutes := range totals {
		rows = append(rows, model.AggregatedRow{
			WorkerID:     k.workerID,
			WorkDate:     k.workDate,
			TotalMinutes: minutes,
			TotalHours:   HoursFromMinutes(minutes),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WorkDate != rows[j].WorkDate {
			return rows[i].WorkDate > rows[j].WorkDate
		}
		return rows[i].WorkerID < rows[j].WorkerID
	})
	return rows
}

// TotalHours sums the minutes of all rows before converting, so per-row
// rounding never compounds. The result is not rounded.
func TotalHours(rows []model.AggregatedRow) float64 {
	return finiteOrZero(float64(TotalMinutes(rows)) / 60)
}

// TotalMinutes sums the minutes of all rows.
func TotalMinutes(rows []model.AggregatedRow) int64 {
	var total int64
	for _, r := range rows {
		total += r.TotalMinutes
	}
	return total
}

// RowKey is the composite key consumers use to identify a row.
func RowKey(row model.AggregatedRow) string {
	return row.WorkerID + "::" + row.WorkDate
}

// HoursFromMinutes converts minutes to hours rounded to two decimals.
func HoursFromMinutes(minutes int64) float64 {
	return Round2(float64(minutes) / 60)
}

// Round2 rounds to two decimal places, ties away from zero. Rounding works on
// the shortest decimal representation of v so that values like 12.345 round
// to 12.35 even though their binary form sits just below the tie.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= 2 {
		return v
	}

	digits := intPart + frac[:2]
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Magnitudes past int64 hundredths have no fractional precision left.
		return v
	}
	if frac[2] >= '5' {
		n++
	}
	out := float64(n) / 100
	if neg {
		out = -out
	}
	return finiteOrZero(out)
}

func wellFormed(r model.DurationRecord) bool {
	if r.WorkerID == "" || r.DurationMinutes < 0 {
		return false
	}
	_, err := time.Parse(model.DateLayout, r.WorkDate)
	return err == nil
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
