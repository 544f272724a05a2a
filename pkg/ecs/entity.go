package ecs

import "github.com/google/uuid"

// Entity is an opaque marker. It owns no components; hosts pair it with a
// Components value and pass it to component methods as an argument.
type Entity struct {
	id uuid.UUID
}

// NewEntity returns an entity with a fresh random identity.
func NewEntity() Entity {
	return Entity{id: uuid.New()}
}

// ID returns the entity's identity.
func (e Entity) ID() uuid.UUID {
	return e.id
}

func (e Entity) String() string {
	return e.id.String()
}
