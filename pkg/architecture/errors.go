package architecture

import (
	"errors"
	"fmt"
)

var (
	// ErrArchitectureNotFound is returned when no architecture has the requested id
	ErrArchitectureNotFound = errors.New("architecture not found")

	// ErrNetworkNotFound is returned when no network has the requested id
	ErrNetworkNotFound = errors.New("network not found")

	// ErrInvalidDataset is returned when dataset files fail validation
	ErrInvalidDataset = errors.New("invalid dataset")
)

func architectureNotFound(id int) error {
	return fmt.Errorf("%w: %d", ErrArchitectureNotFound, id)
}

func networkNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNetworkNotFound, id)
}
