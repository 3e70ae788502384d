package matutils

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestOneHot(t *testing.T) {
	v := OneHot(4, 2)
	if HotIndex(v) != 2 {
		t.Errorf("oneHot: want(2) have(%d)", HotIndex(v))
	}
	if HotIndex(mat.NewVecDense(3, nil)) != -1 {
		t.Error("hotIndex: zero vector should give -1")
	}
}

func TestFlatten(t *testing.T) {
	rows := []mat.Vector{
		mat.NewVecDense(2, []float64{1, 2}),
		mat.NewVecDense(2, []float64{3, 4}),
	}
	data, err := Flatten(rows, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3, 4}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("flatten: want(%v) have(%v)", want, data)
		}
	}

	if _, err := Flatten(rows, 3); err == nil {
		t.Error("flatten: expected error on width mismatch")
	}
}
