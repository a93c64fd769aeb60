package store

import "fmt"

// Driver identifies a concrete storage engine.
type Driver string

const (
	DriverMemory Driver = "memory" // in-memory only (tests / ephemeral)
	DriverSQLite Driver = "sqlite" // embedded sqlite file
)

// Open constructs the configured engine. Defaults to sqlite when driver
// is unset.
func Open(driver Driver, sqlitePath string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case "", DriverSQLite:
		return NewSQLite(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
