package photo

import "errors"

var (
	ErrNoFile         = errors.New("no file uploaded")
	ErrEmptySelection = errors.New("no photo ids provided")
)
