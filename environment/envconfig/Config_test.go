package envconfig

import (
	"encoding/json"
	"testing"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		config  Config
		obs     int
		actions int
	}{
		{NewFrozenlake(0.9, false), 16, 4},
		{NewKArmedBandit([]float64{0.4, 0.8, 0.3, 0.75}), 4, 4},
		{Config{Environment: MultiArmedBandit, Gamma: 1,
			Means: []float64{0, 1}, StdDevs: []float64{1, 1}}, 2, 2},
	}

	for _, test := range tests {
		t.Run(string(test.config.Environment), func(t *testing.T) {
			data, err := json.Marshal(test.config)
			if err != nil {
				t.Fatal(err)
			}
			var c Config
			if err := json.Unmarshal(data, &c); err != nil {
				t.Fatal(err)
			}

			e, err := c.Create(0)
			if err != nil {
				t.Fatal(err)
			}
			if e.ObservationSpace() != test.obs || e.ActionSpace() != test.actions {
				t.Errorf("create: spaces\n\twant(%d, %d)\n\thave(%d, %d)",
					test.obs, test.actions, e.ObservationSpace(), e.ActionSpace())
			}
			if e.Name() != string(test.config.Environment) {
				t.Errorf("name: want(%v) have(%v)", test.config.Environment,
					e.Name())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		{Environment: "Cartpole", Gamma: 0.9},
		{Environment: Frozenlake, Gamma: 0},
		{Environment: KArmedBandit, Gamma: 1},
		{Environment: MultiArmedBandit, Gamma: 1, Means: []float64{1}},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("validate(%+v): expected error", c)
		}
		if _, err := c.Create(0); err == nil {
			t.Errorf("create(%+v): expected error", c)
		}
	}
}
