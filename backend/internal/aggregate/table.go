// Package aggregate builds the count tables of the report: speeches per
// week, per state and per news channel.
package aggregate

// Table is a dense count grid with ordered row and column labels
type Table struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Cells   [][]int  `json:"cells"`
}

// NewTable returns a zero-filled table
func NewTable(rows, columns []string) *Table {
	t := &Table{
		Rows:    append([]string{}, rows...),
		Columns: append([]string{}, columns...),
		Cells:   make([][]int, len(rows)),
	}
	for i := range t.Cells {
		t.Cells[i] = make([]int, len(columns))
	}
	return t
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

// Get returns a cell, zero for unknown labels
func (t *Table) Get(row, col string) int {
	i, j := indexOf(t.Rows, row), indexOf(t.Columns, col)
	if i < 0 || j < 0 {
		return 0
	}
	return t.Cells[i][j]
}

// Add increments a cell. Unknown labels are ignored.
func (t *Table) Add(row, col string, n int) {
	i, j := indexOf(t.Rows, row), indexOf(t.Columns, col)
	if i < 0 || j < 0 {
		return
	}
	t.Cells[i][j] += n
}

// RowTotal sums one row
func (t *Table) RowTotal(row string) int {
	i := indexOf(t.Rows, row)
	if i < 0 {
		return 0
	}
	total := 0
	for _, v := range t.Cells[i] {
		total += v
	}
	return total
}

// ColumnTotal sums one column
func (t *Table) ColumnTotal(col string) int {
	j := indexOf(t.Columns, col)
	if j < 0 {
		return 0
	}
	total := 0
	for _, row := range t.Cells {
		total += row[j]
	}
	return total
}
