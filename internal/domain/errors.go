package domain

import "errors"

var (
	ErrSeatNotFound = errors.New("seat not catalogued")
	ErrSeatOccupied = errors.New("seat already assigned")
)
