package dotpath

import "errors"

// Errors
var (
	ErrBadTolerance    = errors.New("tolerance must be a positive finite number")
	ErrBadFlatness     = errors.New("flatness must be a positive finite number")
	ErrBadPathData     = errors.New("bad path data")
	ErrNilPath         = errors.New("nil path")
	ErrOddParity       = errors.New("graph has an odd number of odd-degree vertices")
	ErrUnpairedVertex  = errors.New("odd-degree vertex left without a partner")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrCatalogReadOnly = errors.New("catalog is in read-only mode")
	ErrCatalogClosed   = errors.New("catalog is closed")
	ErrTourNotFound    = errors.New("tour not found")
	ErrBadRecord       = errors.New("bad tour record")
)
