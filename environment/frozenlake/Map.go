package frozenlake

import (
	"fmt"
	"strings"
)

// Cell types of a Frozenlake map
const (
	Start  byte = 'S'
	Frozen byte = 'F'
	Hole   byte = 'H'
	Goal   byte = 'G'
)

// Default maps
var (
	Map4x4 = []string{
		"SFFF",
		"FHFH",
		"FFFH",
		"HFFG",
	}

	Map8x8 = []string{
		"SFFFFFFF",
		"FFFFFFFF",
		"FFFHFFFF",
		"FFFFFHFF",
		"FFFHFFFF",
		"FHHFFFHF",
		"FHFFHFHF",
		"FFFHFFFG",
	}
)

// Map is a rectangular Frozenlake layout, stored row major with row 0
// at the top
type Map struct {
	r, c  int
	cells []byte
	start int
}

// NewMap parses a map from its rows. Each row must have the same length,
// contain only the cell types S, F, H, and G, and the map must have
// exactly one start cell and at least one goal cell.
func NewMap(rows []string) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("newMap: map must have at least one cell")
	}

	r, c := len(rows), len(rows[0])
	cells := make([]byte, 0, r*c)
	start, goals := -1, 0

	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("newMap: row %d has wrong length"+
				"\n\twant(%d)\n\thave(%d)", i, c, len(row))
		}
		for j := 0; j < c; j++ {
			switch row[j] {
			case Start:
				if start >= 0 {
					return nil, fmt.Errorf("newMap: multiple start cells")
				}
				start = cToInd(j, i, c)
			case Goal:
				goals++
			case Frozen, Hole:
			default:
				return nil, fmt.Errorf("newMap: unknown cell type %q at "+
					"(%d, %d)", row[j], j, i)
			}
			cells = append(cells, row[j])
		}
	}

	if start < 0 {
		return nil, fmt.Errorf("newMap: no start cell")
	}
	if goals == 0 {
		return nil, fmt.Errorf("newMap: no goal cell")
	}

	return &Map{r: r, c: c, cells: cells, start: start}, nil
}

// Dims gets the rows and columns of the Map
func (m *Map) Dims() (r, c int) {
	return m.r, m.c
}

// Cells returns the number of cells in the map
func (m *Map) Cells() int {
	return len(m.cells)
}

// At returns the cell type at index i
func (m *Map) At(i int) byte {
	return m.cells[i]
}

// Start returns the index of the start cell
func (m *Map) Start() int {
	return m.start
}

// Terminal returns whether cell i ends an episode
func (m *Map) Terminal(i int) bool {
	return m.cells[i] == Hole || m.cells[i] == Goal
}

func (m *Map) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.Write(m.cells[i*m.c : (i+1)*m.c])
		b.WriteByte('\n')
	}
	return b.String()
}

func cToInd(x, y, c int) int {
	return y*c + x
}

// indToC converts a cell index into (x, y) coordinates
func indToC(i, c int) (int, int) {
	y := i / c
	x := i - (y * c)
	return x, y
}
