// Package db provides a database interface and implementations.
package db

import "github.com/blacktop/devirt/internal/model"

// Database is the interface that wraps the basic database operations.
type Database interface {
	// Connect connects to the database.
	Connect() error

	// CreateRun records a new run. It assigns the run's ID.
	CreateRun(r *model.Run) error

	// FinishRun stores the run's end time.
	FinishRun(r *model.Run) error

	// Create stores a module report and its methods. It assigns their IDs.
	Create(m *model.Module) error

	// Get returns the module report with the given ID.
	// It returns model.ErrNotFound if the key does not exist.
	Get(id uint) (*model.Module, error)

	// List returns the module reports of a run in insertion order.
	List(runID uint) ([]*model.Module, error)

	// Close closes the database.
	Close() error
}
