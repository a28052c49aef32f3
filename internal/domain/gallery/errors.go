package gallery

import "errors"

var (
	ErrImageNotFound = errors.New("image not found")
	ErrNotOwner      = errors.New("you do not own this image")
	ErrInvalidRecord = errors.New("image record violates a constraint")
)
