package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bankass/awards-api/internal/application/verification"
	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/pkg/validate"
)

// userFinder resolves the account a verification request targets.
type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// VerificationHandler handles the email verification flow: issuing codes and
// consuming them, plus the pending-session endpoints the browser polls.
type VerificationHandler struct {
	svc   verification.Service
	users userFinder
}

func NewVerificationHandler(svc verification.Service, users userFinder) *VerificationHandler {
	return &VerificationHandler{svc: svc, users: users}
}

// SendCodeResponse is returned from the send-verification endpoint. The
// development code is only present outside production.
type SendCodeResponse struct {
	SessionID       string    `json:"session_id,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
	DevelopmentCode string    `json:"development_code,omitempty"`
	Message         string    `json:"message"`
}

func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	res, err := h.svc.SendCode(r.Context(), verification.SendCodeRequest{
		UserID:        u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		CreateSession: true,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SendCodeResponse{
		SessionID:       res.SessionID,
		ExpiresAt:       res.ExpiresAt,
		DevelopmentCode: res.DevelopmentCode,
		Message:         "verification code sent",
	})
}

func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"code" validate:"required,len=6,numeric"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.svc.VerifyCode(r.Context(), verification.VerifyCodeRequest{
		UserID: u.UserID,
		Email:  u.Email,
		Code:   req.Code,
	}); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email verified"})
}

// PendingSessionResponse is the public view of a pending session. The
// one-time code never leaves the server through this endpoint.
type PendingSessionResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *VerificationHandler) GetPendingSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id required")
		return
	}
	sess, ok := h.svc.PendingSession(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}
	writeJSON(w, http.StatusOK, PendingSessionResponse{
		UserID:    sess.UserID,
		Email:     sess.Email,
		Name:      sess.Name,
		CreatedAt: sess.CreatedAt,
	})
}

func (h *VerificationHandler) DeletePendingSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id required")
		return
	}
	if !h.svc.DeletePendingSession(sessionID) {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "session deleted"})
}
