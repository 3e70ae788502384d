package initwfn

import (
	"encoding/json"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestInitializeBounds(t *testing.T) {
	in, out := 10, 6
	limit := math.Sqrt(6.0 / float64(in+out))

	w := NewGlorotU(1).Initialize(rand.NewSource(1), in, out)
	if len(w) != in*out {
		t.Fatalf("initialize: want(%d) have(%d)", in*out, len(w))
	}
	for _, v := range w {
		if math.Abs(v) > limit {
			t.Fatalf("initialize: weight %v outside of ±%v", v, limit)
		}
	}

	for _, v := range NewZeroes().Initialize(nil, 3, 3) {
		if v != 0 {
			t.Fatalf("zeroes: have(%v)", v)
		}
	}
}

func TestInitializeSeeded(t *testing.T) {
	a := NewHeN(1).Initialize(rand.NewSource(4), 5, 5)
	b := NewHeN(1).Initialize(rand.NewSource(4), 5, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("initialize: equally seeded weights differ")
		}
	}
}

func TestUnmarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewUniform(-0.5, 0.25))
	if err != nil {
		t.Fatal(err)
	}

	var i InitWFn
	if err := json.Unmarshal(data, &i); err != nil {
		t.Fatal(err)
	}
	c, ok := i.Config.(*UniformConfig)
	if !ok || i.Type != Uniform {
		t.Fatalf("unmarshalJSON: wrong config type %T", i.Config)
	}
	if c.Low != -0.5 || c.High != 0.25 {
		t.Errorf("unmarshalJSON: have(%+v)", c)
	}

	if err := json.Unmarshal([]byte(`{"Type":"Orthogonal"}`), &i); err == nil {
		t.Error("unmarshalJSON: expected error on unknown type")
	}
}
