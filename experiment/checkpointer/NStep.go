package checkpointer

import (
	"fmt"
	"os"
)

// nStep implements checkpointing every N epochs
type nStep struct {
	interval int
	object   Serializable // Object to save

	// filename names the file the object is saved in at an epoch, see
	// EpochFilename and Fixed
	filename func(epoch int) string
}

// NewNStep returns a checkpointer that checkpoints every n epochs
func NewNStep(n int, object Serializable,
	filename func(epoch int) string) (Checkpointer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNStep: interval must be positive"+
			"\n\thave(%d)", n)
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the Checkpointer's tracked object if epoch is a
// multiple of the checkpointing interval
func (n *nStep) Checkpoint(epoch int) error {
	if epoch%n.interval != 0 {
		return nil
	}

	file, err := os.Create(n.filename(epoch))
	if err != nil {
		return fmt.Errorf("checkpoint: %v", err)
	}
	defer file.Close()

	if err := n.object.Save(file); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// Restore loads object from the file filename
func Restore(object Serializable, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("restore: %v", err)
	}
	defer file.Close()

	if err := object.Load(file); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}
