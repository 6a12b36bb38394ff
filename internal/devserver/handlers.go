package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsaniceto14/investctl/internal/common"
	"github.com/rsaniceto14/investctl/internal/model"
	"github.com/rsaniceto14/investctl/internal/pagination"
	"github.com/rsaniceto14/investctl/internal/storage"
)

const (
	defaultPageSize = 10
	dateLayout      = "2006-01-02"
)

// investmentPayload is one record on the wire. Amounts travel as bare JSON
// numbers in both directions.
type investmentPayload struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
	ID     int64       `json:"id"`
}

func toPayload(inv model.Investment) investmentPayload {
	return investmentPayload{
		ID:     inv.ID,
		Name:   inv.Name,
		Type:   inv.Type,
		Amount: json.Number(inv.Amount.String()),
		Date:   inv.Date.Format(dateLayout),
	}
}

// pageEnvelope mirrors the paging envelope of the production service.
type pageEnvelope struct {
	Content       []investmentPayload `json:"content"`
	TotalElements int                 `json:"totalElements"`
	TotalPages    int                 `json:"totalPages"`
	Number        int                 `json:"number"`
	Size          int                 `json:"size"`
}

// investmentRequest is the body for create and update calls. Pointer fields
// distinguish absent from zero so incomplete records are rejected.
type investmentRequest struct {
	Name   *string          `json:"name"`
	Type   *string          `json:"type"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"`
}

func (req investmentRequest) toModel() (model.Investment, error) {
	switch {
	case req.Name == nil:
		return model.Investment{}, fmt.Errorf("missing name")
	case req.Type == nil:
		return model.Investment{}, fmt.Errorf("missing type")
	case req.Amount == nil:
		return model.Investment{}, fmt.Errorf("missing amount")
	case req.Date == nil:
		return model.Investment{}, fmt.Errorf("missing date")
	}
	date, err := time.Parse(dateLayout, *req.Date)
	if err != nil {
		return model.Investment{}, fmt.Errorf("invalid date %q: expected %s", *req.Date, dateLayout)
	}
	return model.Investment{
		Name:   *req.Name,
		Type:   *req.Type,
		Amount: *req.Amount,
		Date:   date,
	}, nil
}

// handleListInvestments serves the collection page. The whole collection
// travels in content; page and size shape only the envelope metadata the
// client renders its page controls from.
func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if size == 0 {
		writeError(w, http.StatusBadRequest, "size parameter must be positive")
		return
	}

	investments, err := s.store.ListInvestments(r.Context())
	if err != nil {
		s.storeError(w, r, err, "failed to list investments")
		return
	}

	content := make([]investmentPayload, 0, len(investments))
	for _, inv := range investments {
		content = append(content, toPayload(inv))
	}

	writeJSON(w, http.StatusOK, pageEnvelope{
		Content:       content,
		TotalElements: len(investments),
		TotalPages:    pagination.TotalPages(len(investments), size),
		Number:        page,
		Size:          size,
	})
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	inv, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.CreateInvestment(r.Context(), &inv); err != nil {
		if errors.Is(err, storage.ErrInvalidInvestment) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.storeError(w, r, err, "failed to create investment")
		return
	}

	writeJSON(w, http.StatusCreated, toPayload(inv))
}

func (s *Server) handleGetInvestment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	inv, err := s.store.GetInvestment(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("investment %d not found", id))
			return
		}
		s.storeError(w, r, err, "failed to load investment")
		return
	}

	writeJSON(w, http.StatusOK, toPayload(*inv))
}

func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	inv, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// The path decides which record is replaced; an id in the body is ignored.
	inv.ID = id

	if err := s.store.UpdateInvestment(r.Context(), &inv); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("investment %d not found", id))
		case errors.Is(err, storage.ErrInvalidInvestment):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.storeError(w, r, err, "failed to update investment")
		}
		return
	}

	writeJSON(w, http.StatusOK, toPayload(inv))
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteInvestment(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("investment %d not found", id))
			return
		}
		s.storeError(w, r, err, "failed to delete investment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "username already taken")
		case errors.Is(err, storage.ErrEmptyString):
			writeError(w, http.StatusBadRequest, "username and password are required")
		default:
			s.storeError(w, r, err, "failed to register user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Username string `json:"username"`
		ID       int64  `json:"id"`
	}{Username: user.Username, ID: user.ID})
}

// queryInt reads a non-negative integer query parameter, falling back to def
// when the parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}

// pathID parses the {id} path segment, replying 400 itself when the segment
// is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", r.PathValue("id")))
		return 0, false
	}
	return id, true
}

// storeError logs an unexpected storage failure with the request id and
// replies with a generic 500.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	common.LogError(err, msg, common.Fields{"request_id": requestIDFrom(r.Context())})
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		common.LogError(err, "failed to encode response", nil)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
