package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"shoestore-assistant/internal/assistant/chat"
	"shoestore-assistant/internal/common/errors"
)

// userIDHeader carries the authenticated user identity resolved by the edge
// proxy. An absent header means an anonymous requester.
const userIDHeader = "X-User-ID"

// ChatRequest is the POST /api/chat payload.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  string `json:"userId" validate:"omitempty,max=128"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		s.obs.RecordChatProcessed(r.Context(), outcome)
		s.obs.RecordChatDuration(r.Context(), time.Since(start), outcome)
	}()

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome = "rejected"
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	// The gateway-injected header is authoritative; the body field only
	// stands in when no header is present.
	if headerUser := r.Header.Get(userIDHeader); headerUser != "" {
		req.UserID = headerUser
	}
	if err := s.validate.Struct(req); err != nil {
		outcome = "rejected"
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Code:    string(errors.ErrCodeMessageRequired),
			Details: err.Error(),
		})
		return
	}

	resp, err := s.chat.Process(r.Context(), chat.Request{Message: req.Message, UserID: req.UserID})
	if err != nil {
		outcome = "error"
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	cart, err := s.commerce.Cart(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if cart == nil {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"items": []interface{}{}, "totalAmount": 0})
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleRemoveCartLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	lineID := mux.Vars(r)["lineId"]
	cart, err := s.commerce.RemoveCartLine(r.Context(), userID, lineID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	wishlist, err := s.commerce.Wishlist(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if wishlist == nil {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"items": []interface{}{}})
		return
	}
	s.writeJSON(w, http.StatusOK, wishlist)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "user identity required"})
		return "", false
	}
	return userID, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var se *errors.StandardError
	if !stderrors.As(err, &se) {
		s.log.WithError(err).Error("unhandled request error", nil)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch se.Code {
	case errors.ErrCodeMessageRequired:
		status = http.StatusBadRequest
	case errors.ErrCodeCompletionUnavailable:
		status = http.StatusServiceUnavailable
	case errors.ErrCodeCompletionFailed:
		status = http.StatusBadGateway
	case errors.ErrCodeItemNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeAmbiguousMatch:
		status = http.StatusUnprocessableEntity
	}
	if status >= http.StatusInternalServerError {
		s.log.WithError(se).Error("request failed", map[string]interface{}{"code": string(se.Code)})
	}
	s.writeJSON(w, status, errorResponse{Error: se.Message, Code: string(se.Code), Details: se.Details})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("response encoding failed", nil)
	}
}
