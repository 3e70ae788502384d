package tracker

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/rlharness/timestep"
)

func episodes(rewards ...float64) []timestep.Episode {
	eps := make([]timestep.Episode, len(rewards))
	for i, r := range rewards {
		eps[i] = timestep.Episode{
			Steps:     make([]timestep.Step, i+1),
			SumReward: timestep.Reward(r),
		}
	}
	return eps
}

func TestTrackers(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		tracker Tracker
		want    []float64
	}{
		{"Return", NewReturn(filepath.Join(dir, "return.bin")),
			[]float64{0, 1, 0.5, 0.5, 0}},
		{"MeanReturn", NewMeanReturn(filepath.Join(dir, "mean.bin")),
			[]float64{0.5, 1.0 / 3}},
		{"SuccessRate", NewSuccessRate(filepath.Join(dir, "success.bin")),
			[]float64{0.5, 2.0 / 3}},
		{"EpisodeLength", NewEpisodeLength(filepath.Join(dir, "len.bin")),
			[]float64{1.5, 2}},
		{"Loss", NewLoss(filepath.Join(dir, "loss.bin")),
			[]float64{0.3, 0.1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.tracker.Track(1, episodes(0, 1), 0.3)
			test.tracker.Track(2, episodes(0.5, 0.5, 0), 0.1)

			if err := test.tracker.Save(); err != nil {
				t.Fatal(err)
			}

			for _, have := range [][]float64{test.tracker.Data(),
				mustLoad(t, test.tracker)} {
				if len(have) != len(test.want) {
					t.Fatalf("want %v, have %v", test.want, have)
				}
				for i := range have {
					if math.Abs(have[i]-test.want[i]) > 1e-12 {
						t.Errorf("want %v, have %v", test.want, have)
					}
				}
			}
		})
	}
}

func mustLoad(t *testing.T, tr Tracker) []float64 {
	var filename string
	switch tr := tr.(type) {
	case *Return:
		filename = tr.filename
	case *Loss:
		filename = tr.filename
	case *epochMean:
		filename = tr.filename
	}

	data, err := LoadData(filename)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestEmptyEpoch(t *testing.T) {
	tr := NewSuccessRate(filepath.Join(t.TempDir(), "success.bin"))
	tr.Track(1, nil, 0)
	if data := tr.Data(); len(data) != 1 || data[0] != 0 {
		t.Errorf("track: empty epoch should be tracked as 0, have %v", data)
	}
}
