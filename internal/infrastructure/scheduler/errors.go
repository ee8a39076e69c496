package scheduler

import "errors"

var (
	// ErrJobNotFound is returned when a job is not registered
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when a job name is registered twice
	ErrDuplicateJob = errors.New("job already registered")

	// ErrInvalidJob is returned for a job without a name or function
	ErrInvalidJob = errors.New("job requires a name and a function")
)
