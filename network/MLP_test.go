package network

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"

	"github.com/samuelfneumann/rlharness/initwfn"
	"github.com/samuelfneumann/rlharness/solver"
)

func newTestMLP(t testing.TB, seed uint64) *MLP {
	s, err := solver.NewDefaultAdam(0.05, 1)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMLP(4, 3, []int{16}, []*Activation{ReLU()},
		initwfn.NewGlorotU(1), s, seed)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewMLPValidation(t *testing.T) {
	s, _ := solver.NewDefaultAdam(0.01, 1)
	init := initwfn.NewGlorotU(1)

	if _, err := NewMLP(4, 2, []int{8}, nil, init, s, 0); err == nil {
		t.Error("newMLP: expected error on missing activations")
	}
	if _, err := NewMLP(0, 2, nil, nil, init, s, 0); !IsShape(err) {
		t.Errorf("newMLP: want shape error, have(%v)", err)
	}
}

func TestForward(t *testing.T) {
	m := newTestMLP(t, 1)

	out, err := m.Forward([]float64{1, 0, 0, 0, 0, 1, 0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 6 {
		t.Fatalf("forward: want(6 outputs) have(%d)", len(out))
	}

	// Single row forward passes agree with batched ones
	single, err := m.Forward([]float64{0, 1, 0, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range single {
		if math.Abs(single[i]-out[3+i]) > 1e-9 {
			t.Errorf("forward: batched and single outputs differ")
		}
	}

	if _, err := m.Forward([]float64{1, 2, 3}, 1); !IsShape(err) {
		t.Errorf("forward: want shape error, have(%v)", err)
	}
}

func TestFitStepReducesLoss(t *testing.T) {
	m := newTestMLP(t, 2)
	input := []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	targets := []int{0, 1, 2, 1}

	first, err := m.FitStep(input, targets)
	if err != nil {
		t.Fatal(err)
	}
	var last float64
	for i := 0; i < 200; i++ {
		if last, err = m.FitStep(input, targets); err != nil {
			t.Fatal(err)
		}
	}
	if !(last < first) {
		t.Errorf("fitStep: loss did not decrease\n\tfirst(%v)\n\tlast(%v)",
			first, last)
	}

	out, err := m.Forward(input, 4)
	if err != nil {
		t.Fatal(err)
	}
	for row, target := range targets {
		scores := out[row*3 : (row+1)*3]
		for j, s := range scores {
			if j != target && s >= scores[target] {
				t.Errorf("row %d: target %d not the highest score %v", row,
					target, scores)
			}
		}
	}
}

func TestFitStepEdgeCases(t *testing.T) {
	m := newTestMLP(t, 3)

	if loss, err := m.FitStep(nil, nil); err != nil || loss != 0 {
		t.Errorf("fitStep: empty batch should be a no-op, have(%v, %v)", loss,
			err)
	}
	if _, err := m.FitStep([]float64{1, 0, 0}, []int{0}); !IsShape(err) {
		t.Errorf("fitStep: want shape error on width, have(%v)", err)
	}
	if _, err := m.FitStep([]float64{1, 0, 0, 0}, []int{3}); !IsShape(err) {
		t.Errorf("fitStep: want shape error on target, have(%v)", err)
	}
	if _, err := m.FitStep([]float64{1, 0, 0, 0}, []int{2}); err != nil {
		t.Errorf("fitStep: single row: %v", err)
	}
}

func TestCloneAndGob(t *testing.T) {
	m := newTestMLP(t, 4)
	input := []float64{0.5, -0.5, 1, 0}

	clone, err := m.Clone()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := m.Forward(input, 1)

	// Training the original does not change the clone
	for i := 0; i < 10; i++ {
		if _, err := m.FitStep(input, []int{2}); err != nil {
			t.Fatal(err)
		}
	}
	have, _ := clone.Forward(input, 1)
	for i := range want {
		if want[i] != have[i] {
			t.Fatal("clone: shares parameters with original")
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		t.Fatal(err)
	}
	var decoded MLP
	if err := gob.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatal(err)
	}

	want, _ = m.Forward(input, 1)
	have, err = decoded.Forward(input, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if math.Abs(want[i]-have[i]) > 1e-12 {
			t.Fatalf("gob: decoded network differs\n\twant(%v)\n\thave(%v)",
				want, have)
		}
	}
}

func TestActivationText(t *testing.T) {
	for _, name := range []string{"relu", "tanh", "identity", "sigmoid"} {
		a, err := ParseActivation(name)
		if err != nil {
			t.Fatal(err)
		}
		text, _ := a.MarshalText()
		if string(text) != name {
			t.Errorf("marshalText: want(%v) have(%s)", name, text)
		}
	}
	if _, err := ParseActivation("swish"); err == nil {
		t.Error("parseActivation: expected error")
	}
}
