package rest

import (
	"net/http"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// ListingHandler serves the one-shot submission and the admin review of requests.
type ListingHandler struct {
	submitUC usecases_port.SubmitListingUseCase
	listUC   usecases_port.ListListingRequestsUseCase
	getUC    usecases_port.GetListingRequestUseCase
	statusUC usecases_port.UpdateListingStatusUseCase
	limits   UploadLimits
}

func NewListingHandler(
	submitUC usecases_port.SubmitListingUseCase,
	listUC usecases_port.ListListingRequestsUseCase,
	getUC usecases_port.GetListingRequestUseCase,
	statusUC usecases_port.UpdateListingStatusUseCase,
	limits UploadLimits,
) *ListingHandler {
	return &ListingHandler{submitUC: submitUC, listUC: listUC, getUC: getUC, statusUC: statusUC, limits: limits}
}

func (h *ListingHandler) SubmitProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitProperty"})

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

	req, err := h.submitUC.Execute(r.Context(), listingFormFromMultipart(r), files)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Property submitted", port.Fields{"request_id": req.RequestID})
	RespondWithJSON(w, http.StatusCreated, dataResponse{
		Success: true,
		Message: msgSubmitted,
		Data:    submittedResponse{RequestID: req.RequestID},
	})
}

func (h *ListingHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListListingRequests"})

	limit, err := GetLimitOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	offset, err := GetOffsetOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	filter := domain.ListingRequestFilter{
		Status: domain.ListingStatus(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	}.Normalize()

	requests, total, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	items := make([]listingRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, toListingRequestResponse(&requests[i]))
	}
	respondData(w, http.StatusOK, pageResponse{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset})
}

func (h *ListingHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListingRequest"})

	req, err := h.getUC.Execute(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, toListingRequestResponse(req))
}

func (h *ListingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateListingStatus"})

	var body updateStatusRequest
	if err := decodeJSON(r, &body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	if body.Status == "" {
		WriteJSONError(w, http.StatusBadRequest, msgStatusRequired)
		return
	}
	status, err := domain.ParseListingStatus(body.Status)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	req, err := h.statusUC.Execute(r.Context(), chi.URLParam(r, "requestID"), status, body.Note)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, toListingRequestResponse(req))
}
