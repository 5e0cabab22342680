package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bankass/awards-api/internal/application/broadcast"
	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// BroadcastHandler handles admin message broadcasts.
type BroadcastHandler struct {
	svc broadcast.Service
}

func NewBroadcastHandler(svc broadcast.Service) *BroadcastHandler {
	return &BroadcastHandler{svc: svc}
}

// BroadcastEnvelope wraps the send response with the delivery count.
type BroadcastEnvelope struct {
	AdminMessage *domain.AdminMessage `json:"admin_message"`
	Delivered    int                  `json:"delivered"`
}

func (h *BroadcastHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg, delivered, err := h.svc.Send(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, BroadcastEnvelope{AdminMessage: msg, Delivered: delivered})
}

func (h *BroadcastHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *BroadcastHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "broadcast deleted"})
}
