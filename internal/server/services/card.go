package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	msgCardNotFound     = "Card not found"
	msgInvalidCardID    = "Invalid card id"
	msgTitleRequired    = "title required"
	msgInvalidStatus    = "status must be one of todo, in-progress, done"
	msgInvalidDueDate   = "dueDate must be an RFC 3339 timestamp or YYYY-MM-DD date"
	msgOwnerUnavailable = "Unauthorized"
)

// CardInput is the client-supplied part of a card. Nil fields were absent
// from the request.
type CardInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// CardService implements owner-scoped card CRUD. Every method takes the
// requester's id; cards owned by anyone else behave as if they did not exist.
type CardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCardService(db *sql.DB, m repomanager.RepositoryManager) *CardService {
	return &CardService{db: db, repomanager: m}
}

func (s *CardService) Create(ctx context.Context, ownerID string, in CardInput) (*models.Card, error) {
	if ownerID == "" {
		return nil, common.NewUnauthorizedError(msgOwnerUnavailable, nil)
	}
	card := &models.Card{OwnerID: ownerID, Status: models.CardStatusTodo}

	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, common.NewValidationError(msgTitleRequired)
	}
	card.Title = strings.TrimSpace(*in.Title)
	if in.Description != nil {
		card.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		st, err := parseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		card.Status = st
	}
	if in.DueDate != nil {
		due, err := parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		card.DueDate = due
	}

	c, err := s.repomanager.Cards(s.db).Create(ctx, card)
	if err != nil {
		return nil, common.NewInternalError("error creating card", err)
	}
	return c, nil
}

// List returns all cards of ownerID, oldest first.
func (s *CardService) List(ctx context.Context, ownerID string) ([]*models.Card, error) {
	if ownerID == "" {
		return nil, common.NewUnauthorizedError(msgOwnerUnavailable, nil)
	}
	list, err := s.repomanager.Cards(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, common.NewInternalError("error listing cards", err)
	}
	return list, nil
}

func (s *CardService) Get(ctx context.Context, ownerID, id string) (*models.Card, error) {
	if ownerID == "" {
		return nil, common.NewUnauthorizedError(msgOwnerUnavailable, nil)
	}
	if err := validateCardID(id); err != nil {
		return nil, err
	}
	c, err := s.repomanager.Cards(s.db).GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundOrInternal(err, "error loading card")
	}
	return c, nil
}

// Update applies the present fields of in. An empty patch returns the card
// unchanged.
func (s *CardService) Update(ctx context.Context, ownerID, id string, in CardInput) (*models.Card, error) {
	if ownerID == "" {
		return nil, common.NewUnauthorizedError(msgOwnerUnavailable, nil)
	}
	if err := validateCardID(id); err != nil {
		return nil, err
	}

	var patch models.CardPatch
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, common.NewValidationError(msgTitleRequired)
		}
		patch.Title = &t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		patch.Description = &d
	}
	if in.Status != nil {
		st, err := parseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &st
	}
	if in.DueDate != nil {
		due, err := parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = due
	}

	repo := s.repomanager.Cards(s.db)
	var (
		c   *models.Card
		err error
	)
	if patch.Empty() {
		c, err = repo.GetByIDForOwner(ctx, id, ownerID)
	} else {
		c, err = repo.Update(ctx, id, ownerID, patch)
	}
	if err != nil {
		return nil, notFoundOrInternal(err, "error updating card")
	}
	return c, nil
}

func (s *CardService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return common.NewUnauthorizedError(msgOwnerUnavailable, nil)
	}
	if err := validateCardID(id); err != nil {
		return err
	}
	if err := s.repomanager.Cards(s.db).Delete(ctx, id, ownerID); err != nil {
		return notFoundOrInternal(err, "error deleting card")
	}
	return nil
}

func validateCardID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.NewValidationError(msgInvalidCardID)
	}
	return nil
}

func parseStatus(s string) (models.CardStatus, error) {
	st := models.CardStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", common.NewValidationError(msgInvalidStatus)
	}
	return st, nil
}

// parseDueDate accepts RFC 3339 or a bare date (midnight UTC). An empty
// string means no due date.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, nil
	}
	return nil, common.NewValidationError(msgInvalidDueDate)
}

func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NewNotFoundError(msgCardNotFound)
	}
	return common.NewInternalError(msg, err)
}
