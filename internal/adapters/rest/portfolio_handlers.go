package rest

import (
	"net/http"
	"strconv"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type PortfolioHandler struct {
	listUC        usecases_port.ListPortfolioUseCase
	getUC         usecases_port.GetPortfolioItemUseCase
	createUC      usecases_port.CreatePortfolioItemUseCase
	updateUC      usecases_port.UpdatePortfolioItemUseCase
	deleteUC      usecases_port.DeletePortfolioItemUseCase
	addImageUC    usecases_port.AddPortfolioImageUseCase
	reorderUC     usecases_port.ReorderPortfolioImagesUseCase
	deleteImageUC usecases_port.DeletePortfolioImageUseCase
}

func NewPortfolioHandler(
	listUC usecases_port.ListPortfolioUseCase,
	getUC usecases_port.GetPortfolioItemUseCase,
	createUC usecases_port.CreatePortfolioItemUseCase,
	updateUC usecases_port.UpdatePortfolioItemUseCase,
	deleteUC usecases_port.DeletePortfolioItemUseCase,
	addImageUC usecases_port.AddPortfolioImageUseCase,
	reorderUC usecases_port.ReorderPortfolioImagesUseCase,
	deleteImageUC usecases_port.DeletePortfolioImageUseCase,
) *PortfolioHandler {
	return &PortfolioHandler{
		listUC:        listUC,
		getUC:         getUC,
		createUC:      createUC,
		updateUC:      updateUC,
		deleteUC:      deleteUC,
		addImageUC:    addImageUC,
		reorderUC:     reorderUC,
		deleteImageUC: deleteImageUC,
	}
}

func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListPortfolio"})

	filter := domain.PortfolioFilter{Category: r.URL.Query().Get("category")}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
			return
		}
		filter.Featured = &featured
	}

	items, err := h.listUC.Execute(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetPortfolioItem"})
	id, ok := urlUUID(w, r, logger, "itemID")
	if !ok {
		return
	}

	item, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreatePortfolioItem"})

	var in domain.PortfolioInput
	if err := decodeJSON(r, &in); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	item, err := h.createUC.Execute(r.Context(), in)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusCreated, item)
}

func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdatePortfolioItem"})
	id, ok := urlUUID(w, r, logger, "itemID")
	if !ok {
		return
	}

	var in domain.PortfolioInput
	if err := decodeJSON(r, &in); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	item, err := h.updateUC.Execute(r.Context(), id, in)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeletePortfolioItem"})
	id, ok := urlUUID(w, r, logger, "itemID")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, messageResponse{Success: true, Message: msgDeleted})
}

func (h *PortfolioHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddPortfolioImage"})

	var in domain.PortfolioImageInput
	if err := decodeJSON(r, &in); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	img, err := h.addImageUC.Execute(r.Context(), in)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusCreated, img)
}

func (h *PortfolioHandler) ReorderImages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ReorderPortfolioImages"})

	var req reorderImagesRequest
	if err := decodeJSON(r, &req); err != nil || req.ItemID == uuid.Nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	item, err := h.reorderUC.Execute(r.Context(), req.ItemID, req.ImageIDs)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

func (h *PortfolioHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeletePortfolioImage"})

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	if err := h.deleteImageUC.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, messageResponse{Success: true, Message: msgDeleted})
}
