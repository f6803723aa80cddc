package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"
)

// maxContentBody caps a CMS section body.
const maxContentBody = 64 << 10

type ContentHandler struct {
	getUC    usecases_port.GetContentUseCase
	updateUC usecases_port.UpdateContentUseCase
}

func NewContentHandler(getUC usecases_port.GetContentUseCase, updateUC usecases_port.UpdateContentUseCase) *ContentHandler {
	return &ContentHandler{getUC: getUC, updateUC: updateUC}
}

// Get returns a handler bound to one section, so each section keeps its own route.
func (h *ContentHandler) Get(section domain.ContentSection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
			"handler": "GetContent",
			"section": section,
		})

		content, err := h.getUC.Execute(r.Context(), section)
		if err != nil {
			writeUseCaseError(w, logger, err)
			return
		}
		respondData(w, http.StatusOK, content.Data)
	}
}

func (h *ContentHandler) Update(section domain.ContentSection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
			"handler": "UpdateContent",
			"section": section,
		})

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxContentBody))
		if err != nil {
			writeUseCaseError(w, logger, err)
			return
		}
		if !json.Valid(body) {
			WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
			return
		}

		content, err := h.updateUC.Execute(r.Context(), section, json.RawMessage(body))
		if err != nil {
			writeUseCaseError(w, logger, err)
			return
		}
		respondData(w, http.StatusOK, content.Data)
	}
}
