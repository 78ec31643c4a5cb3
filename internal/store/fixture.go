package store

import (
	"context"
	"sort"

	"matrixdesk/internal/matrix"
)

// Fixture serves a fixed set of placeholder matrices.
type Fixture struct {
	records map[string]matrix.Record
}

// NewFixture returns the placeholder set for slots ans and 1 through 7.
func NewFixture() *Fixture {
	return NewFixtureFrom(placeholders())
}

// NewFixtureFrom serves exactly recs.
func NewFixtureFrom(recs []matrix.Record) *Fixture {
	f := &Fixture{records: make(map[string]matrix.Record, len(recs))}
	for _, r := range recs {
		f.records[r.ID] = r
	}
	return f
}

// Get implements Store.
func (f *Fixture) Get(_ context.Context, id string) (matrix.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return matrix.Record{}, ErrNotFound
	}
	return r, nil
}

// Records returns every record sorted by id.
func (f *Fixture) Records() []matrix.Record {
	out := make([]matrix.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close implements Store.
func (f *Fixture) Close() error { return nil }

func placeholders() []matrix.Record {
	return []matrix.Record{
		{ID: "ans", Name: "ANS_Result", Rows: 3, Cols: 3, Data: [][]int{
			{1, 2, 3},
			{4, 5, 6},
			{7, 8, 9},
		}},
		{ID: "1", Name: "Matrix_A", Rows: 4, Cols: 4, Data: [][]int{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		}},
		{ID: "2", Name: "Matrix_B", Rows: 3, Cols: 4, Data: [][]int{
			{2, 4, 6, 8},
			{1, 3, 5, 7},
			{9, 11, 13, 15},
		}},
		{ID: "3", Name: "Matrix_C", Rows: 2, Cols: 3, Data: [][]int{
			{10, 20, 30},
			{40, 50, 60},
		}},
		{ID: "4", Name: "Matrix_D", Rows: 5, Cols: 2, Data: [][]int{
			{1, 2},
			{3, 4},
			{5, 6},
			{7, 8},
			{9, 10},
		}},
		{ID: "5", Name: "Matrix_E", Rows: 3, Cols: 3, Data: [][]int{
			{-5, 10, -15},
			{20, -25, 30},
			{-35, 40, -45},
		}},
		{ID: "6", Name: "Matrix_F", Rows: 2, Cols: 2, Data: [][]int{
			{100, 200},
			{300, 400},
		}},
		{ID: "7", Name: "Matrix_G", Rows: 6, Cols: 3, Data: [][]int{
			{1, 2, 3},
			{4, 5, 6},
			{7, 8, 9},
			{10, 11, 12},
			{13, 14, 15},
			{16, 17, 18},
		}},
	}
}
