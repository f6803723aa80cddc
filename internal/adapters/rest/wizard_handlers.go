package rest

import (
	"net/http"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WizardHandler serves the step-by-step listing form backed by stored drafts.
type WizardHandler struct {
	createUC    usecases_port.CreateDraftUseCase
	getUC       usecases_port.GetDraftUseCase
	updateUC    usecases_port.UpdateDraftUseCase
	navigateUC  usecases_port.NavigateDraftUseCase
	addImagesUC usecases_port.AddDraftImagesUseCase
	removeUC    usecases_port.RemoveDraftImageUseCase
	submitUC    usecases_port.SubmitDraftUseCase
	limits      UploadLimits
}

func NewWizardHandler(
	createUC usecases_port.CreateDraftUseCase,
	getUC usecases_port.GetDraftUseCase,
	updateUC usecases_port.UpdateDraftUseCase,
	navigateUC usecases_port.NavigateDraftUseCase,
	addImagesUC usecases_port.AddDraftImagesUseCase,
	removeUC usecases_port.RemoveDraftImageUseCase,
	submitUC usecases_port.SubmitDraftUseCase,
	limits UploadLimits,
) *WizardHandler {
	return &WizardHandler{
		createUC:    createUC,
		getUC:       getUC,
		updateUC:    updateUC,
		navigateUC:  navigateUC,
		addImagesUC: addImagesUC,
		removeUC:    removeUC,
		submitUC:    submitUC,
		limits:      limits,
	}
}

// urlUUID parses a uuid path parameter and answers 400 when it is malformed.
func urlUUID(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid id in URL", port.Fields{"param": param, "provided_id": raw})
		WriteJSONError(w, http.StatusBadRequest, msgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *WizardHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateDraft"})

	draft, err := h.createUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusCreated, toDraftResponse(draft))
}

func (h *WizardHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDraft"})
	id, ok := urlUUID(w, r, logger, "draftID")
	if !ok {
		return
	}

	draft, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, toDraftResponse(draft))
}

func (h *WizardHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateDraft"})
	id, ok := urlUUID(w, r, logger, "draftID")
	if !ok {
		return
	}

	var req updateDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("Failed to decode draft patch", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	draft, err := h.updateUC.Execute(r.Context(), id, usecases_port.DraftUpdate{
		Patch:          req.Form,
		ToggleFeatures: req.ToggleFeatures,
		ToggleServices: req.ToggleServices,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, toDraftResponse(draft))
}

func (h *WizardHandler) NavigateDraft(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "NavigateDraft"})
	id, ok := urlUUID(w, r, logger, "draftID")
	if !ok {
		return
	}

	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil || req.Action == "" {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	draft, err := h.navigateUC.Execute(r.Context(), id, usecases_port.NavigationAction(req.Action), domain.Step(req.Step))
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, toDraftResponse(draft))
}

func (h *WizardHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddDraftImages"})
	id, ok := urlUUID(w, r, logger, "draftID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.limits.requestLimit(h.limits.MaxImages))
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		logger.Warn("Failed to parse multipart form", port.Fields{"error": err.Error()})
		status, message := statusFor(err)
		if status == http.StatusInternalServerError {
			status, message = http.StatusBadRequest, msgBadRequest
		}
		WriteJSONError(w, status, message)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, err := readImageFiles(r, "images", h.limits)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	if len(files) == 0 {
		WriteJSONError(w, http.StatusBadRequest, msgMissingFile)
		return
	}

	draft, err := h.addImagesUC.Execute(r.Context(), id, files)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, toDraftResponse(draft))
}

func (h *WizardHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveDraftImage"})
	id, ok := urlUUID(w, r, logger, "draftID")
	if !ok {
		return
	}
	imageID, ok := urlUUID(w, r, logger, "imageID")
	if !ok {
		return
	}

	draft, err := h.removeUC.Execute(r.Context(), id, imageID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, toDraftResponse(draft))
}

func (h *WizardHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitDraft"})
	id, ok := urlUUID(w, r, logger, "draftID")
	if !ok {
		return
	}

	req, err := h.submitUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, dataResponse{
		Success: true,
		Message: msgSubmitted,
		Data:    submittedResponse{RequestID: req.RequestID},
	})
}
