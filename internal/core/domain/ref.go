package domain

import "encoding/json"

// Ref is a reference to another entity that is either just an identifier or
// a fully loaded record. Repositories set Populated explicitly when they
// joined the target; sanitizers render off that flag instead of sniffing the
// value shape.
type Ref[T any] struct {
	ID        string
	Populated *T
}

// NewRef returns an unpopulated reference.
func NewRef[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// PopulatedRef returns a reference carrying the loaded entity.
func PopulatedRef[T any](id string, entity *T) Ref[T] {
	return Ref[T]{ID: id, Populated: entity}
}

// IsPopulated reports whether the referenced entity was loaded.
func (r Ref[T]) IsPopulated() bool {
	return r.Populated != nil
}

// MarshalJSON renders the string id, or the nested entity when populated.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Populated != nil {
		return json.Marshal(r.Populated)
	}
	return json.Marshal(r.ID)
}
