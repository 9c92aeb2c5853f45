package board

import "errors"

var (
	ErrMalformedSquare = errors.New("malformed square")
	ErrMalformedMask   = errors.New("malformed square mask")
	ErrDuplicatePiece  = errors.New("duplicate piece name")
	ErrSquareOccupied  = errors.New("square occupied")
	ErrNoPieceAtSquare = errors.New("no piece at square")
	ErrPieceNotFound   = errors.New("piece not found")
	// ErrCorrupt indicates occupancy and piece positions disagree.
	ErrCorrupt = errors.New("board corrupt")
)
