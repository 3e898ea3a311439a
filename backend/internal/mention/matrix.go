// Package mention counts how often each speaker refers to each candidate.
package mention

import (
	"encoding/json"
	"sort"
)

// Matrix is a square count table. Rows are who speaks, columns who is
// mentioned, both in Speakers order.
type Matrix struct {
	Speakers []string `json:"speakers"`
	Counts   [][]int  `json:"counts"`

	index map[string]int
}

// Edge is one non-zero off-diagonal cell
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// NewMatrix returns a zero matrix over speakers
func NewMatrix(speakers []string) *Matrix {
	m := &Matrix{
		Speakers: append([]string(nil), speakers...),
		Counts:   make([][]int, len(speakers)),
	}
	for i := range m.Counts {
		m.Counts[i] = make([]int, len(speakers))
	}
	m.reindex()
	return m
}

func (m *Matrix) reindex() {
	m.index = make(map[string]int, len(m.Speakers))
	for i, s := range m.Speakers {
		m.index[s] = i
	}
}

// UnmarshalJSON decodes a matrix and builds its name index
func (m *Matrix) UnmarshalJSON(data []byte) error {
	type plain Matrix
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Matrix(p)
	m.reindex()
	return nil
}

// Index returns the position of name, or -1. It never modifies m, so a
// matrix can be read from several goroutines.
func (m *Matrix) Index(name string) int {
	if m.index == nil {
		for i, s := range m.Speakers {
			if s == name {
				return i
			}
		}
		return -1
	}
	if i, ok := m.index[name]; ok {
		return i
	}
	return -1
}

// Get returns the count of from mentioning to. Unknown names read as zero.
func (m *Matrix) Get(from, to string) int {
	i, j := m.Index(from), m.Index(to)
	if i < 0 || j < 0 {
		return 0
	}
	return m.Counts[i][j]
}

// Set stores a cell. It reports false when either name is not in the matrix.
func (m *Matrix) Set(from, to string, v int) bool {
	i, j := m.Index(from), m.Index(to)
	if i < 0 || j < 0 {
		return false
	}
	m.Counts[i][j] = v
	return true
}

// Total is the sum of every cell
func (m *Matrix) Total() int {
	total := 0
	for _, row := range m.Counts {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Edges returns the non-zero off-diagonal cells, heaviest first. Equal
// weights keep matrix order.
func (m *Matrix) Edges() []Edge {
	var edges []Edge
	for i, from := range m.Speakers {
		for j, to := range m.Speakers {
			if i == j || m.Counts[i][j] == 0 {
				continue
			}
			edges = append(edges, Edge{From: from, To: to, Weight: m.Counts[i][j]})
		}
	}
	sort.SliceStable(edges, func(a, b int) bool {
		return edges[a].Weight > edges[b].Weight
	})
	return edges
}
