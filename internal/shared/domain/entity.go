package domain

import "time"

// Entity represents a domain entity with identity.
type Entity interface {
	ID() int64
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Equals(other Entity) bool
}

// BaseEntity provides common entity functionality.
// Identities are assigned by the record store; zero means not yet persisted.
type BaseEntity struct {
	id        int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity creates a transient entity with current timestamps.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		createdAt: now,
		updatedAt: now,
	}
}

// RehydrateBaseEntity recreates an entity from persisted state.
func RehydrateBaseEntity(id int64, createdAt, updatedAt time.Time) BaseEntity {
	return BaseEntity{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (e BaseEntity) ID() int64            { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// IsTransient reports whether the entity has not been stored yet.
func (e BaseEntity) IsTransient() bool { return e.id == 0 }

// AssignID sets the store-generated identity.
func (e *BaseEntity) AssignID(id int64) {
	e.id = id
}

// Touch updates the updatedAt timestamp.
func (e *BaseEntity) Touch() {
	e.updatedAt = time.Now().UTC()
}

// Equals checks if two entities have the same identity.
// Transient entities are never equal to anything.
func (e BaseEntity) Equals(other Entity) bool {
	if other == nil || e.id == 0 {
		return false
	}
	return e.id == other.ID()
}
