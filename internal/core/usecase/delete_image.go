package usecase

import (
	"context"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

// DeleteImageUseCase removes a stored asset. Anonymous callers (the listing
// wizard) may only remove property images; admins may remove any asset.
type DeleteImageUseCase struct {
	storage      port.ImageStoragePort
	publicPrefix string
}

func NewDeleteImageUseCase(storage port.ImageStoragePort, folderRoot string) *DeleteImageUseCase {
	folder, _ := domain.UploadFolder(folderRoot, domain.UploadTypeProperty)
	return &DeleteImageUseCase{storage: storage, publicPrefix: folder + "/"}
}

func (uc *DeleteImageUseCase) allowed(ctx context.Context, publicID string) bool {
	if claims, ok := contextkeys.ClaimsFromContext(ctx); ok && claims.Role == domain.RoleAdmin {
		return true
	}
	return strings.HasPrefix(publicID, uc.publicPrefix) && !strings.Contains(publicID, "..")
}

func (uc *DeleteImageUseCase) Execute(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		v := domain.NewValidationError()
		v.Add("publicId", domain.MsgRequired)
		return v
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "DeleteImage",
		"public_id": publicID,
	})
	if !uc.allowed(ctx, publicID) {
		ucLogger.Warn("Delete outside the public folder refused", nil)
		return domain.ErrForbidden
	}
	if err := uc.storage.Delete(ctx, publicID); err != nil {
		ucLogger.Error("Failed to delete image", err, nil)
		return err
	}
	ucLogger.Info("Image deleted", nil)
	return nil
}
