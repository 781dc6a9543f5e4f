package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carelens/carelens/internal/assist/engine"
	"github.com/carelens/carelens/internal/assist/preview"
	"github.com/carelens/carelens/internal/core/domain"
	"github.com/carelens/carelens/internal/core/ports"
)

// Handler serves the assist API: one endpoint that runs a reasoning pass and
// three that inspect or resolve the resulting preview proposal.
type Handler struct {
	logger    *slog.Logger
	engine    *engine.Engine
	source    ports.DataSource
	questions ports.QuestionRouter
	previews  *PreviewStore
	clock     func() time.Time
}

// NewHandler wires a handler. A nil clock defaults to time.Now; tests and
// pinned-clock deployments inject their own.
func NewHandler(logger *slog.Logger, eng *engine.Engine, source ports.DataSource, questions ports.QuestionRouter, clock func() time.Time) *Handler {
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		logger:    logger,
		engine:    eng,
		source:    source,
		questions: questions,
		previews:  NewPreviewStore(),
		clock:     clock,
	}
}

// Routes mounts the assist endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/v1/assist", h.handleAssist)
	r.Get("/v1/preview/{previewID}", h.handleGetPreview)
	r.Post("/v1/preview/{previewID}/acknowledge", h.handleAcknowledge)
	r.Post("/v1/preview/{previewID}/deny", h.handleDeny)
	r.Post("/v1/question", h.handleQuestion)
}

type assistRequest struct {
	Message     string `json:"message"`
	PatientID   string `json:"patient_id"`
	ActorRole   string `json:"actor_role"`
	SessionRole string `json:"session_role"`
}

type assistResponse struct {
	MessageID string `json:"message_id"`
	engine.PassResult
}

func (h *Handler) handleAssist(w http.ResponseWriter, r *http.Request) {
	var req assistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	timeline, err := h.source.Timeline(r.Context(), req.PatientID)
	if err != nil {
		AddError(r.Context(), err)
		writeError(w, r, http.StatusNotFound, "patient history not found")
		return
	}
	patient, err := h.source.PatientContext(r.Context(), req.PatientID)
	if err != nil {
		AddError(r.Context(), err)
		writeError(w, r, http.StatusNotFound, "patient history not found")
		return
	}

	messageID := GetRequestID(r.Context())
	result := h.engine.Run(r.Context(), engine.PassInput{
		MessageID:   messageID,
		Message:     req.Message,
		SessionRole: req.SessionRole,
		ActorRole:   req.ActorRole,
		Timeline:    timeline,
		Patient:     patient,
		Now:         h.clock(),
	})

	h.previews.Put(messageID, result.Intent.Intent, result.PreviewRecord, result.AuditTrail)

	AddLogField(r.Context(), "intent", string(result.Intent.Intent))
	AddLogField(r.Context(), "preview_id", result.PreviewRecord.PreviewID)

	writeJSON(w, http.StatusOK, assistResponse{MessageID: messageID, PassResult: result})
}

type previewResponse struct {
	Record      domain.PreviewConfirmationRecord `json:"record"`
	AuditEvents []domain.PreviewAuditEvent       `json:"audit_events"`
}

func (h *Handler) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	previewID := chi.URLParam(r, "previewID")
	record, events, ok := h.previews.Get(previewID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "preview not found")
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Record: record, AuditEvents: events})
}

type resolveRequest struct {
	ActorRole string `json:"actor_role"`
}

type resolveResponse struct {
	Record     domain.PreviewConfirmationRecord `json:"record"`
	AuditEvent domain.PreviewAuditEvent         `json:"audit_event"`
}

func (h *Handler) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	h.resolvePreview(w, r, domain.StatePreviewAcknowledged)
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	h.resolvePreview(w, r, domain.StatePreviewDenied)
}

func (h *Handler) resolvePreview(w http.ResponseWriter, r *http.Request, target domain.PreviewState) {
	previewID := chi.URLParam(r, "previewID")

	var req resolveRequest
	if r.Body != nil {
		// An empty body is fine; the actor role just stays blank.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	record, event, err := h.previews.Transition(previewID, target, req.ActorRole, h.clock())
	if err != nil {
		AddError(r.Context(), err)
		if errors.Is(err, preview.ErrInvalidTransition) {
			writeError(w, r, http.StatusConflict, "preview already resolved")
			return
		}
		writeError(w, r, http.StatusNotFound, "preview not found")
		return
	}

	AddLogField(r.Context(), "preview_state", string(record.State))
	writeJSON(w, http.StatusOK, resolveResponse{Record: record, AuditEvent: event})
}

type questionRequest struct {
	Question  string `json:"question"`
	PatientID string `json:"patient_id"`
}

func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, r, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.questions.Route(r.Context(), req.PatientID, req.Question)
	if err != nil {
		AddError(r.Context(), err)
		writeError(w, r, http.StatusNotFound, "patient history not found")
		return
	}

	AddLogField(r.Context(), "question_category", string(answer.Category))
	writeJSON(w, http.StatusOK, answer)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, _ *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
