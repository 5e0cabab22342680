package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bankass/awards-api/internal/application/candidate"
	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// maxMediaUpload caps candidate media uploads at 20 MB.
const maxMediaUpload = 20 << 20

// CandidateHandler handles candidate endpoints, including media uploads.
type CandidateHandler struct {
	svc candidate.Service
}

func NewCandidateHandler(svc candidate.Service) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		candidates, err := h.svc.ListByCategory(r.Context(), categoryID)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, candidates)
		return
	}
	candidates, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CandidateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "candidate deleted"})
}

// UploadMedia accepts a multipart form with a "file" part and a "kind" field
// of either "image" or "audio".
func (h *CandidateHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMediaUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file part required")
		return
	}
	defer file.Close()

	kind := r.FormValue("kind")
	if kind == "" {
		kind = candidate.MediaImage
	}
	url, err := h.svc.UploadMedia(r.Context(), chi.URLParam(r, "id"), kind, header.Filename, file)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// GetMedia returns a short-lived presigned URL for a candidate's stored
// media. The "kind" query parameter selects "image" or "audio" and
// defaults to "image".
func (h *CandidateHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = candidate.MediaImage
	}
	url, err := h.svc.MediaURL(r.Context(), chi.URLParam(r, "id"), kind)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
