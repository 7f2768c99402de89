// Package repository implements the reservation store over MySQL.
// Sentinel errors defined here let handlers distinguish failure
// scenarios with errors.Is and map them to HTTP status codes.
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation exists for the
// requested ID. Handlers should translate this into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")
