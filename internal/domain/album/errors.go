package album

import "errors"

var (
	ErrNothingToGenerate = errors.New("please provide either a theme or an image")
	ErrEmptySelection    = errors.New("no album ids provided")
)
