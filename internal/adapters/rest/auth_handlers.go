package rest

import (
	"net/http"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"
)

type AuthHandler struct {
	loginUC usecases_port.LoginAdminUseCase
	meUC    usecases_port.GetCurrentUserUseCase
}

func NewAuthHandler(loginUC usecases_port.LoginAdminUseCase, meUC usecases_port.GetCurrentUserUseCase) *AuthHandler {
	return &AuthHandler{loginUC: loginUC, meUC: meUC}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("Failed to decode login request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	user, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Me"})

	claims, ok := contextkeys.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	user, err := h.meUC.Execute(r.Context(), claims)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	respondData(w, http.StatusOK, user)
}
