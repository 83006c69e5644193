package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newCardService(t *testing.T) *CardService {
	t.Helper()
	db, rm := newMemoryBackend(t)
	return NewCardService(db, rm)
}

func TestCardCreate_Defaults(t *testing.T) {
	s := newCardService(t)

	c, err := s.Create(context.Background(), "alice", CardInput{Title: ptr("  t1  ")})
	require.NoError(t, err)
	assert.Equal(t, "t1", c.Title)
	assert.Equal(t, models.CardStatusTodo, c.Status)
	assert.Equal(t, "alice", c.OwnerID)
	assert.Nil(t, c.DueDate)
}

func TestCardCreate_Validation(t *testing.T) {
	s := newCardService(t)
	ctx := context.Background()

	cases := map[string]CardInput{
		"no title":    {},
		"blank title": {Title: ptr("   ")},
		"bad status":  {Title: ptr("t"), Status: ptr("archived")},
		"bad due":     {Title: ptr("t"), DueDate: ptr("next tuesday")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(ctx, "alice", in)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	_, err := s.Create(ctx, "", CardInput{Title: ptr("t")})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCardCreate_DueDateFormats(t *testing.T) {
	s := newCardService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, "alice", CardInput{Title: ptr("t"), DueDate: ptr("2030-01-02T03:04:05Z")})
	require.NoError(t, err)
	assert.True(t, c.DueDate.Equal(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)))

	c, err = s.Create(ctx, "alice", CardInput{Title: ptr("t"), DueDate: ptr("2030-01-02")})
	require.NoError(t, err)
	assert.True(t, c.DueDate.Equal(time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)))

	c, err = s.Create(ctx, "alice", CardInput{Title: ptr("t"), DueDate: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, c.DueDate)
}

func TestCard_OwnerIsolation(t *testing.T) {
	s := newCardService(t)
	ctx := context.Background()

	a, err := s.Create(ctx, "alice", CardInput{Title: ptr("secret")})
	require.NoError(t, err)

	_, err = s.Get(ctx, "bob", a.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.Update(ctx, "bob", a.ID, CardInput{Title: ptr("mine now")})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "bob", a.ID), common.ErrNotFound)

	list, err := s.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.Get(ctx, "alice", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)
}

func TestCard_MalformedID(t *testing.T) {
	s := newCardService(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "alice", "123")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = s.Update(ctx, "alice", "123", CardInput{Title: ptr("x")})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.ErrorIs(t, s.Delete(ctx, "alice", "nope"), common.ErrValidation)
}

func TestCardUpdate_Partial(t *testing.T) {
	s := newCardService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, "alice", CardInput{Title: ptr("t"), Description: ptr("d")})
	require.NoError(t, err)

	got, err := s.Update(ctx, "alice", c.ID, CardInput{Status: ptr("in-progress")})
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, models.CardStatusInProgress, got.Status)

	_, err = s.Update(ctx, "alice", c.ID, CardInput{Title: ptr(" ")})
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = s.Update(ctx, "alice", c.ID, CardInput{Status: ptr("blocked")})
	assert.ErrorIs(t, err, common.ErrValidation)

	same, err := s.Update(ctx, "alice", c.ID, CardInput{})
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusInProgress, same.Status)

	_, err = s.Update(ctx, "alice", uuid.NewString(), CardInput{Title: ptr("x")})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCardDelete_Twice(t *testing.T) {
	s := newCardService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, "alice", CardInput{Title: ptr("t1")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "alice", c.ID))
	err = s.Delete(ctx, "alice", c.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, msgCardNotFound, common.MessageOf(err))
}

type failingCardsRepo struct{ err error }

func (f failingCardsRepo) Create(context.Context, *models.Card) (*models.Card, error) {
	return nil, f.err
}
func (f failingCardsRepo) ListByOwner(context.Context, string) ([]*models.Card, error) {
	return nil, f.err
}
func (f failingCardsRepo) GetByIDForOwner(context.Context, string, string) (*models.Card, error) {
	return nil, f.err
}
func (f failingCardsRepo) Update(context.Context, string, string, models.CardPatch) (*models.Card, error) {
	return nil, f.err
}
func (f failingCardsRepo) Delete(context.Context, string, string) error { return f.err }

func TestCard_StoreErrorsAreInternal(t *testing.T) {
	s := NewCardService(nil, &fakeRepoManager{c: failingCardsRepo{err: errors.New("db down")}})
	ctx := context.Background()
	id := uuid.NewString()

	_, err := s.Create(ctx, "alice", CardInput{Title: ptr("t")})
	assert.ErrorIs(t, err, common.ErrInternal)
	_, err = s.List(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrInternal)
	_, err = s.Get(ctx, "alice", id)
	assert.ErrorIs(t, err, common.ErrInternal)
	_, err = s.Update(ctx, "alice", id, CardInput{Title: ptr("t")})
	assert.ErrorIs(t, err, common.ErrInternal)
	assert.ErrorIs(t, s.Delete(ctx, "alice", id), common.ErrInternal)
}
