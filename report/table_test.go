package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sum(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func TestPaginateRows(t *testing.T) {
	table := defaultLayout(t).Schedule.Table

	tests := []struct {
		rows int
		want []int
	}{
		{0, []int{0}},
		{1, []int{1}},
		{12, []int{12}},
		{39, []int{39}},
		{40, []int{39, 1}},
		{82, []int{39, 43}},
		{360, []int{39, 43, 43, 43, 43, 43, 43, 43, 20}},
	}

	for _, tt := range tests {
		got := PaginateRows(table, a4H, tt.rows)
		assert.Equal(t, tt.want, got, "rows=%d", tt.rows)
		assert.Equal(t, tt.rows, sum(got))
	}
}

func TestPaginateRows_OversizedRow(t *testing.T) {
	table := defaultLayout(t).Schedule.Table
	table.RowHeight = 500

	// every page still takes at least one row
	assert.Equal(t, []int{1, 1, 1}, PaginateRows(table, a4H, 3))
}
