package checkpointer

import "fmt"

// EpochFilename returns a function which names the checkpoint of an
// epoch by appending the epoch number to prefix, so that each
// checkpoint is saved in its own file, e.g. agent10.bin, agent20.bin.
func EpochFilename(prefix, extension string) func(epoch int) string {
	return func(epoch int) string {
		return fmt.Sprintf("%v%d%v", prefix, epoch, extension)
	}
}

// Fixed returns a function which always returns filename, so that each
// checkpoint overwrites the last
func Fixed(filename string) func(epoch int) string {
	return func(int) string { return filename }
}
