// Package tracker implements Trackers, which track and save data in an
// experiment
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/rlharness/timestep"
)

// Tracker keeps track of experiment data at the end of each epoch and
// saves the data after the experiment has finished
type Tracker interface {
	// Track tracks the episodes of an epoch and the loss of the update
	// made from them
	Track(epoch int, episodes []timestep.Episode, loss float64)

	// Data returns a copy of the tracked data
	Data() []float64

	Save() error
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %v", err)
	}
	return data, nil
}

// save saves data to filename
func save(filename string, data []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("save: could not encode data: %v", err)
	}
	return nil
}

func copyData(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	return out
}
