// Package checkpointer implements Checkpointers, which periodically
// save the state of an agent during an experiment
package checkpointer

import (
	"io"
)

// Serializable is an object that can be saved and later restored
type Serializable interface {
	Save(w io.Writer) error
	Load(r io.Reader) error
}

// Checkpointer checkpoints/saves serializable objects based on the
// number of epochs completed
type Checkpointer interface {
	Checkpoint(epoch int) error
}
