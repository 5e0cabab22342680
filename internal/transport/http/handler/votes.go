package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bankass/awards-api/internal/application/voting"
	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/pkg/validate"
	"github.com/bankass/awards-api/internal/transport/http/middleware"
)

// VoteHandler handles vote casting, the caller's ballot and admin results.
type VoteHandler struct {
	svc voting.Service
}

func NewVoteHandler(svc voting.Service) *VoteHandler { return &VoteHandler{svc: svc} }

func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := h.svc.Cast(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VoteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	votes, err := h.svc.ListMine(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Results(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// VotingConfigHandler exposes the voting window configuration.
type VotingConfigHandler struct {
	svc voting.Service
}

func NewVotingConfigHandler(svc voting.Service) *VotingConfigHandler {
	return &VotingConfigHandler{svc: svc}
}

func (h *VotingConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetConfig(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *VotingConfigHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateVotingConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg, err := h.svc.SetConfig(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
