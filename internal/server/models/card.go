// Package models holds the persistent entities of the kanban server.
package models

import "time"

// CardStatus is the column a card sits in.
type CardStatus string

const (
	CardStatusTodo       CardStatus = "todo"
	CardStatusInProgress CardStatus = "in-progress"
	CardStatusDone       CardStatus = "done"
)

// Valid reports whether s is one of the three known statuses.
func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusTodo, CardStatusInProgress, CardStatusDone:
		return true
	}
	return false
}

type Card struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      CardStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CardPatch lists the fields of a partial update. Nil means unchanged.
type CardPatch struct {
	Title       *string
	Description *string
	Status      *CardStatus
	DueDate     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p CardPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDate == nil
}
