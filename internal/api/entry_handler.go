package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/api/shared"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/service"
)

// EntryHandler handles entry lifecycle and search requests.
type EntryHandler struct {
	entryService service.EntryService
	userService  service.UserService
	logger       *slog.Logger
}

// NewEntryHandler creates a new EntryHandler. The user service resolves the
// owner referenced by requests.
func NewEntryHandler(
	entryService service.EntryService,
	userService service.UserService,
	logger *slog.Logger,
) *EntryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EntryHandler")
	}

	return &EntryHandler{
		entryService: entryService,
		userService:  userService,
		logger:       logger.With(slog.String("component", "entry_handler")),
	}
}

// CreateEntry handles POST /api/entries.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	entry, ok := h.entryFromRequest(w, r, &req, MsgOwnerNotFound)
	if !ok {
		return
	}

	saved, err := h.entryService.Create(r.Context(), entry)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create entry")
		return
	}

	log.Debug("entry created", slog.String("entry_id", saved.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, entryToResponse(saved))
}

// UpdateEntry handles PUT /api/entries/{id}.
// Status and registration date are kept from the stored entry; status moves
// only through UpdateStatus.
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	entry, ok := h.entryFromRequest(w, r, &req, MsgOwnerNotFound)
	if !ok {
		return
	}
	entry.ID = existing.ID
	entry.Status = existing.Status
	entry.RegistrationDate = existing.RegistrationDate

	saved, err := h.entryService.Update(r.Context(), entry)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update entry")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(saved))
}

// UpdateStatus handles PUT /api/entries/{id}/status.
func (h *EntryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	existing, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	status, err := domain.ParseEntryStatus(req.Status)
	if err != nil {
		log.Debug("rejected status", slog.String("status", req.Status))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidStatus)
		return
	}

	saved, err := h.entryService.ChangeStatus(r.Context(), existing, status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update entry status")
		return
	}

	log.Debug("entry status changed",
		slog.String("entry_id", saved.ID.String()),
		slog.String("status", string(saved.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(saved))
}

// DeleteEntry handles DELETE /api/entries/{id}.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadEntry(w, r)
	if !ok {
		return
	}

	if err := h.entryService.Delete(r.Context(), existing); err != nil {
		HandleAPIError(w, r, err, "Failed to delete entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetEntry handles GET /api/entries/{id}.
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadEntry(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(existing))
}

// SearchEntries handles GET /api/entries. Every query parameter is an
// optional equality filter; an empty result is an empty JSON array.
func (h *EntryHandler) SearchEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	template := &domain.Entry{Description: q.Get("description")}

	var err error
	if template.Month, err = parseOptionalInt(q.Get("month")); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if template.Year, err = parseOptionalInt(q.Get("year")); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if v := q.Get("type"); v != "" {
		if template.Type, err = domain.ParseEntryType(v); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}
	if v := q.Get("status"); v != "" {
		if template.Status, err = domain.ParseEntryStatus(v); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	ownerID, err := parseOptionalUUID(q.Get("user"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if ownerID != uuid.Nil {
		if !h.ownerExists(w, r, ownerID, MsgSearchOwnerAbsent) {
			return
		}
		template.OwnerUserID = ownerID
	}

	entries, err := h.entryService.Search(r.Context(), template)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search entries")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entriesToResponse(entries))
}

// loadEntry resolves the {id} path parameter to a stored entry. It writes
// the error response and returns false when that is not possible.
func (h *EntryHandler) loadEntry(w http.ResponseWriter, r *http.Request) (*domain.Entry, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	entry, found, err := h.entryService.FindByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get entry")
		return nil, false
	}
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, MsgEntryNotFound)
		return nil, false
	}
	return entry, true
}

// entryFromRequest converts the payload into an unpersisted entry. Field
// checks are left to the entry service; only the owner reference is resolved
// here.
func (h *EntryHandler) entryFromRequest(
	w http.ResponseWriter,
	r *http.Request,
	req *EntryRequest,
	ownerMissingMsg string,
) (*domain.Entry, bool) {
	ownerID, err := parseOptionalUUID(req.User)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, ownerMissingMsg)
		return nil, false
	}
	if ownerID != uuid.Nil && !h.ownerExists(w, r, ownerID, ownerMissingMsg) {
		return nil, false
	}

	return &domain.Entry{
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount,
		OwnerUserID: ownerID,
		// Unknown values reach validation and are reported as a missing type.
		Type: domain.EntryType(strings.ToUpper(strings.TrimSpace(req.Type))),
	}, true
}

func (h *EntryHandler) ownerExists(w http.ResponseWriter, r *http.Request, id uuid.UUID, msg string) bool {
	_, found, err := h.userService.FindByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to resolve user")
		return false
	}
	if !found {
		shared.RespondWithError(w, r, http.StatusBadRequest, msg)
		return false
	}
	return true
}
