package model

import "time"

// Entity is implemented by every owner-scoped record kind.
type Entity interface {
	GetID() string
	GetOwnerID() string
	GetTitle() string
	GetCreatedAt() time.Time
}

// Completable is an Entity with a completion flag.
type Completable interface {
	Entity
	IsCompleted() bool
}

func (t Todo) GetID() string           { return t.ID }
func (t Todo) GetOwnerID() string      { return t.UserID }
func (t Todo) GetTitle() string        { return t.Title }
func (t Todo) GetCreatedAt() time.Time { return t.CreatedAt }
func (t Todo) IsCompleted() bool       { return t.Completed }

func (c ChecklistItem) GetID() string           { return c.ID }
func (c ChecklistItem) GetOwnerID() string      { return c.UserID }
func (c ChecklistItem) GetTitle() string        { return c.Title }
func (c ChecklistItem) GetCreatedAt() time.Time { return c.CreatedAt }
func (c ChecklistItem) IsCompleted() bool       { return c.Completed }

// GetTitle returns the category name so categories sort like other entities.
func (c Category) GetTitle() string        { return c.Name }
func (c Category) GetID() string           { return c.ID }
func (c Category) GetOwnerID() string      { return c.UserID }
func (c Category) GetCreatedAt() time.Time { return c.CreatedAt }
