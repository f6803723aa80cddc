package rest

import (
	"net/http"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"
)

type UploadHandler struct {
	uploadUC usecases_port.UploadImageUseCase
	deleteUC usecases_port.DeleteImageUseCase
	limits   UploadLimits
}

func NewUploadHandler(uploadUC usecases_port.UploadImageUseCase, deleteUC usecases_port.DeleteImageUseCase, limits UploadLimits) *UploadHandler {
	return &UploadHandler{uploadUC: uploadUC, deleteUC: deleteUC, limits: limits}
}

// Upload stores one file under the folder of its type tag.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UploadImage"})

	r.Body = http.MaxBytesReader(w, r.Body, h.limits.requestLimit(1))
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

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		WriteJSONError(w, http.StatusBadRequest, msgMissingFile)
		return
	}
	file, err := readImageFile(headers[0], h.limits.MaxBytes)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	uploadType := strings.TrimSpace(r.FormValue("type"))
	if uploadType == "" {
		uploadType = "general"
	}

	stored, err := h.uploadUC.Execute(r.Context(), uploadType, file)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		Message:  msgUploaded,
		URL:      stored.URL,
		PublicID: stored.PublicID,
		Width:    stored.Width,
		Height:   stored.Height,
	})
}

// Delete removes an asset. The public id comes from the query or a JSON body.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteImage"})

	publicID := r.URL.Query().Get("publicId")
	if publicID == "" && r.Body != nil && r.ContentLength != 0 {
		var body deleteImageRequest
		if err := decodeJSON(r, &body); err != nil {
			WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
			return
		}
		publicID = body.PublicID
	}
	if strings.TrimSpace(publicID) == "" {
		WriteJSONError(w, http.StatusBadRequest, msgMissingPublic)
		return
	}

	if err := h.deleteUC.Execute(r.Context(), publicID); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, messageResponse{Success: true, Message: msgDeleted})
}
