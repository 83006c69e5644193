package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/dmitrijs2005/kanban/internal/server/models"
	"github.com/dmitrijs2005/kanban/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// cardRequest is the body of create and update. Fields other than these four
// (owner, id, timestamps) are ignored.
type cardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}

func (c cardRequest) input() services.CardInput {
	return services.CardInput{
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		DueDate:     c.DueDate,
	}
}

type cardResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.CardStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate"`
	Owner       string            `json:"owner"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toCardResponse(c *models.Card) cardResponse {
	return cardResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		DueDate:     c.DueDate,
		Owner:       c.OwnerID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// requester returns the id of the authenticated user.
func requester(r *http.Request) (string, error) {
	u, ok := UserFromContext(r.Context())
	if !ok || u.ID == "" {
		return "", common.NewUnauthorizedError(msgUnauthorized, nil)
	}
	return u.ID, nil
}

func (s *HTTPServer) handleCreateCard(w http.ResponseWriter, r *http.Request) error {
	owner, err := requester(r)
	if err != nil {
		return err
	}
	var req cardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	c, err := s.cards.Create(r.Context(), owner, req.input())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, toCardResponse(c))
	return nil
}

func (s *HTTPServer) handleListCards(w http.ResponseWriter, r *http.Request) error {
	owner, err := requester(r)
	if err != nil {
		return err
	}
	list, err := s.cards.List(r.Context(), owner)
	if err != nil {
		return err
	}
	resp := make([]cardResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, toCardResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *HTTPServer) handleGetCard(w http.ResponseWriter, r *http.Request) error {
	owner, err := requester(r)
	if err != nil {
		return err
	}
	c, err := s.cards.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toCardResponse(c))
	return nil
}

func (s *HTTPServer) handleUpdateCard(w http.ResponseWriter, r *http.Request) error {
	owner, err := requester(r)
	if err != nil {
		return err
	}
	var req cardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	c, err := s.cards.Update(r.Context(), owner, chi.URLParam(r, "id"), req.input())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toCardResponse(c))
	return nil
}

func (s *HTTPServer) handleDeleteCard(w http.ResponseWriter, r *http.Request) error {
	owner, err := requester(r)
	if err != nil {
		return err
	}
	if err := s.cards.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Card deleted"})
	return nil
}
