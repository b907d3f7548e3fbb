package interfaces

import "context"

// -----------------------------------------------------------------------------
// IKeyValueStore is the scoped string persistence behind the watch-list.
// -----------------------------------------------------------------------------

type IKeyValueStore interface {

	// -----------------------------------------------------------------------------

	// Initialize opens the backend and creates whatever schema it needs.
	Initialize() error

	// -----------------------------------------------------------------------------

	// Get returns the value for key. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// -----------------------------------------------------------------------------

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
