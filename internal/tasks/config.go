package tasks

import "time"

// Config holds configuration for the task queue.
type Config struct {
	// Workers processing tasks concurrently
	Workers int

	// Tasks claimed longer than this are handed to another worker
	ReleaseAfter time.Duration

	// How often backlite purges finished tasks
	CleanupInterval time.Duration
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
