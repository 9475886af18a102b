// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/ashureev/scaffolder/internal/domain"
)

// Repository persists reader competency profiles.
type Repository interface {
	// SaveProfile creates or fully overwrites the profile of profile.UserName.
	// LastUpdated is set by the store.
	SaveProfile(ctx context.Context, profile *domain.UserProfile) error

	// GetProfile returns the stored profile, or nil if the name has never
	// been saved. It never writes.
	GetProfile(ctx context.Context, userName string) (*domain.UserProfile, error)

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
