// Package repository provides the persistence contract for the entity
// records. The GORM implementations are the single source of truth — no
// entity state is cached between requests.
package repository

import "errors"

// ErrNotFound signals that the referenced id does not exist. It is distinct
// from storage faults and maps to a 404 at the HTTP boundary.
var ErrNotFound = errors.New("record not found")
