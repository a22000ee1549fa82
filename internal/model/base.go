package model

import "time"

// A Model is implemented by all the persisted records.
type Model interface {
	// GetID returns the model's unique identifier.
	GetID() string
	// SetID defines the model's unique identifier.
	SetID(id string)
	// SetCreatedAt defines the model's creation time.
	SetCreatedAt(t time.Time)
	// SetUpdatedAt defines the model's last modification time.
	SetUpdatedAt(t time.Time)
}

// A Base holds the common fields of all the records.
type Base struct {
	ID        string    `json:"id"         storm:"id"`
	CreatedAt time.Time `json:"created_at" storm:"index"`
	UpdatedAt time.Time `json:"updated_at" storm:"index"`
}

// GetID returns the model's unique identifier.
func (m *Base) GetID() string {
	return m.ID
}

// SetID defines the model's unique identifier.
func (m *Base) SetID(id string) {
	m.ID = id
}

// SetCreatedAt defines the model's creation time.
func (m *Base) SetCreatedAt(t time.Time) {
	m.CreatedAt = t
}

// SetUpdatedAt defines the model's last modification time.
func (m *Base) SetUpdatedAt(t time.Time) {
	m.UpdatedAt = t
}
