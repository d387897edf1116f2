package sla

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sla.service/internal/core/model"
)

func rec(worker, date string, minutes int64) model.DurationRecord {
	return model.DurationRecord{WorkspaceID: "ws1", WorkerID: worker, WorkDate: date, DurationMinutes: minutes}
}

func TestAggregate_EndToEndScenario(t *testing.T) {
	records := []model.DurationRecord{
		rec("u1", "2024-03-05", 40),
		rec("u1", "2024-03-05", 20),
		rec("u2", "2024-03-04", 15),
	}

	rows := Aggregate(records)

	assert.Equal(t, []model.AggregatedRow{
		{WorkerID: "u1", WorkDate: "2024-03-05", TotalMinutes: 60, TotalHours: 1.00},
		{WorkerID: "u2", WorkDate: "2024-03-04", TotalMinutes: 15, TotalHours: 0.25},
	}, rows)
}

func TestAggregate_EmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]model.DurationRecord{}))
	assert.NotNil(t, Aggregate(nil))
}

func TestAggregate_SortOrder(t *testing.T) {
	rows := Aggregate([]model.DurationRecord{
		rec("b", "2024-01-01", 10),
		rec("a", "2024-01-02", 10),
		rec("c", "2024-01-02", 10),
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "a::2024-01-02", RowKey(rows[0]))
	assert.Equal(t, "c::2024-01-02", RowKey(rows[1]))
	assert.Equal(t, "b::2024-01-01", RowKey(rows[2]))
}

func TestAggregate_WorkerOrderIsByteWise(t *testing.T) {
	rows := Aggregate([]model.DurationRecord{
		rec("b", "2024-01-01", 1),
		rec("B", "2024-01-01", 1),
		rec("a", "2024-01-01", 1),
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "B", rows[0].WorkerID)
	assert.Equal(t, "a", rows[1].WorkerID)
	assert.Equal(t, "b", rows[2].WorkerID)
}

func TestAggregate_GroupingAndSums(t *testing.T) {
	records := make([]model.DurationRecord, 0, 200)
	want := map[string]int64{}
	workers := []string{"u1", "u2", "u3"}
	dates := []string{"2024-02-01", "2024-02-02", "2024-02-03", "2024-02-04"}
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		w := workers[r.Intn(len(workers))]
		d := dates[r.Intn(len(dates))]
		m := int64(r.Intn(120))
		records = append(records, rec(w, d, m))
		want[w+"::"+d] += m
	}

	rows := Aggregate(records)

	got := map[string]int64{}
	for _, row := range rows {
		_, dup := got[RowKey(row)]
		require.False(t, dup, "duplicate row %s", RowKey(row))
		got[RowKey(row)] = row.TotalMinutes
	}
	assert.Equal(t, want, got)
}

func TestAggregate_OrderIndependentAndDeterministic(t *testing.T) {
	records := []model.DurationRecord{
		rec("u3", "2024-05-01", 5),
		rec("u1", "2024-05-02", 30),
		rec("u2", "2024-05-01", 45),
		rec("u1", "2024-05-01", 15),
		rec("u1", "2024-05-02", 10),
		rec("u2", "2024-05-03", 60),
	}
	first := Aggregate(records)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.DurationRecord(nil), records...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, first, Aggregate(shuffled))
	}
	assert.Equal(t, first, Aggregate(records))
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	records := []model.DurationRecord{
		rec("u2", "2024-01-01", 5),
		rec("u1", "2024-01-02", 7),
	}
	snapshot := append([]model.DurationRecord(nil), records...)

	Aggregate(records)

	assert.Equal(t, snapshot, records)
}

func TestAggregate_SkipsMalformedRecords(t *testing.T) {
	rows := Aggregate([]model.DurationRecord{
		rec("", "2024-01-01", 10),
		rec("u1", "", 10),
		rec("u1", "01/02/2024", 10),
		rec("u1", "2024-01-01", -5),
		rec("u1", "2024-01-01", 30),
	})

	assert.Equal(t, []model.AggregatedRow{
		{WorkerID: "u1", WorkDate: "2024-01-01", TotalMinutes: 30, TotalHours: 0.5},
	}, rows)
}

func TestAggregate_Rounding(t *testing.T) {
	rows := Aggregate([]model.DurationRecord{rec("u1", "2024-01-01", 37)})

	require.Len(t, rows, 1)
	assert.Equal(t, int64(37), rows[0].TotalMinutes)
	assert.Equal(t, 0.62, rows[0].TotalHours)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{37.5, 37.5},
		{12.345, 12.35},
		{-12.345, -12.35},
		{0.125, 0.13},
		{1.005, 1.01},
		{2.004, 2.0},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestTotalHours_SumThenDivide(t *testing.T) {
	rows := []model.AggregatedRow{
		{WorkerID: "a", WorkDate: "2024-01-01", TotalMinutes: 90, TotalHours: 1.5},
		{WorkerID: "b", WorkDate: "2024-01-01", TotalMinutes: 31, TotalHours: 0.52},
	}

	got := TotalHours(rows)

	assert.InDelta(t, 121.0/60.0, got, 1e-12)
	assert.NotEqual(t, 2.02, got)
	assert.Equal(t, int64(121), TotalMinutes(rows))
}

func TestTotalHours_Empty(t *testing.T) {
	assert.Equal(t, 0.0, TotalHours(nil))
}
