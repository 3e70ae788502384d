// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// OneHot returns a vector of length n with a 1.0 at index i
func OneHot(n, i int) *mat.VecDense {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("oneHot: index out of range\n\twant(0 <= i < %d)"+
			"\n\thave(%d)", n, i))
	}
	vec := mat.NewVecDense(n, nil)
	vec.SetVec(i, 1.0)
	return vec
}

// HotIndex returns the index of the first non-zero element of a vector,
// or -1 if the vector is all zeros
func HotIndex(v mat.Vector) int {
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0.0 {
			return i
		}
	}
	return -1
}

// Flatten stacks the rows of vectors into a single row-major slice.
// Flatten returns an error if the vectors do not all have length cols.
func Flatten(rows []mat.Vector, cols int) ([]float64, error) {
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if row.Len() != cols {
			return nil, fmt.Errorf("flatten: row %d has wrong length"+
				"\n\twant(%d)\n\thave(%d)", i, cols, row.Len())
		}
		for j := 0; j < cols; j++ {
			data = append(data, row.AtVec(j))
		}
	}
	return data, nil
}
