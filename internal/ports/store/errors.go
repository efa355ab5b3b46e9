package store

import "errors"

// Errores comunes que devuelven todos los adapters de storage (memory, postgres, mongo).
// Los services los traducen a sus propios sentinels.
var (
	ErrNotFound = errors.New("store: not found")

	// ErrConflict indica que se violó una restricción de unicidad al escribir.
	ErrConflict = errors.New("store: conflict")
)
