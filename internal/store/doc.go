// Package store defines the persistence contracts consumed by the service
// layer, together with the shared error taxonomy all implementations map
// their backend errors into. Implementations live under internal/platform.
package store
