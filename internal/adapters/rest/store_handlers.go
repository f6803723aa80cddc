package rest

import (
	"net/http"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"
)

// StoreHandler serves the storefront and its admin side.
type StoreHandler struct {
	listUC   usecases_port.ListProductsUseCase
	getUC    usecases_port.GetProductUseCase
	saveUC   usecases_port.SaveProductUseCase
	deleteUC usecases_port.DeleteProductUseCase
	orderUC  usecases_port.PlaceOrderUseCase
	ordersUC usecases_port.ListOrdersUseCase
}

func NewStoreHandler(
	listUC usecases_port.ListProductsUseCase,
	getUC usecases_port.GetProductUseCase,
	saveUC usecases_port.SaveProductUseCase,
	deleteUC usecases_port.DeleteProductUseCase,
	orderUC usecases_port.PlaceOrderUseCase,
	ordersUC usecases_port.ListOrdersUseCase,
) *StoreHandler {
	return &StoreHandler{listUC: listUC, getUC: getUC, saveUC: saveUC, deleteUC: deleteUC, orderUC: orderUC, ordersUC: ordersUC}
}

// listProducts builds the public (active only) and admin (all) listings.
func (h *StoreHandler) listProducts(onlyActive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
			"handler":     "ListProducts",
			"only_active": onlyActive,
		})
		products, err := h.listUC.Execute(r.Context(), onlyActive)
		if err != nil {
			writeUseCaseError(w, logger, err)
			return
		}
		respondData(w, http.StatusOK, products)
	}
}

func (h *StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(true)(w, r)
}

func (h *StoreHandler) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	h.listProducts(false)(w, r)
}

func (h *StoreHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProduct"})
	id, ok := urlUUID(w, r, logger, "productID")
	if !ok {
		return
	}

	product, err := h.getUC.Execute(r.Context(), id, true)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, product)
}

func (h *StoreHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProduct"})

	var in domain.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	product, err := h.saveUC.Create(r.Context(), in)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusCreated, product)
}

func (h *StoreHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProduct"})
	id, ok := urlUUID(w, r, logger, "productID")
	if !ok {
		return
	}

	var in domain.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	product, err := h.saveUC.Update(r.Context(), id, in)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, product)
}

func (h *StoreHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProduct"})
	id, ok := urlUUID(w, r, logger, "productID")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, messageResponse{Success: true, Message: msgDeleted})
}

func (h *StoreHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "PlaceOrder"})
	id, ok := urlUUID(w, r, logger, "productID")
	if !ok {
		return
	}

	var in domain.OrderInput
	if err := decodeJSON(r, &in); err != nil {
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	order, err := h.orderUC.Execute(r.Context(), id, in)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusCreated, orderCreatedResponse{OrderID: order.ID, Total: order.Total})
}

func (h *StoreHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListOrders"})

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

	page := domain.ListingRequestFilter{Limit: limit, Offset: offset}.Normalize()

	orders, total, err := h.ordersUC.Execute(r.Context(), page.Limit, page.Offset)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, pageResponse{Items: orders, Total: total, Limit: page.Limit, Offset: page.Offset})
}
