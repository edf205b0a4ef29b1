// Package store defines the persistence interfaces the rest of the
// application depends on, together with the shared error taxonomy those
// interfaces return. Implementations live under internal/platform; tests
// substitute the in-memory fakes from internal/mocks.
package store
