package manifest

import "errors"

var (
	// ErrUnknownComponentType is returned when no factory is registered for a type.
	ErrUnknownComponentType = errors.New("unknown component type")
	// ErrInvalidManifest is returned when an entry lacks a name or a type.
	ErrInvalidManifest = errors.New("invalid manifest")
)
