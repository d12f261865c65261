package handler

import (
	"context"

	"custodial-wallet/internal/adapter/http/dto"
	"custodial-wallet/internal/core/ports"
	"custodial-wallet/pkg/apperror"
	"custodial-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles back-office operations: reversals and wallet freezes.
type AdminHandler struct {
	txSvc     ports.TransactionService
	walletSvc ports.WalletService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(txSvc ports.TransactionService, walletSvc ports.WalletService) *AdminHandler {
	return &AdminHandler{
		txSvc:     txSvc,
		walletSvc: walletSvc,
	}
}

// ReverseTransaction handles POST /api/v1/admin/transactions/:reference/reverse.
func (h *AdminHandler) ReverseTransaction(c *gin.Context) {
	adminID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ReverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.txSvc.Reverse(c.Request.Context(), ports.ReverseRequest{
		Reference: c.Param("reference"),
		AdminID:   adminID,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromTransaction(result))
}

// FreezeWallet handles POST /api/v1/admin/wallets/:id/freeze.
func (h *AdminHandler) FreezeWallet(c *gin.Context) {
	h.setWalletStatus(c, h.walletSvc.Freeze, "frozen")
}

// UnfreezeWallet handles POST /api/v1/admin/wallets/:id/unfreeze.
func (h *AdminHandler) UnfreezeWallet(c *gin.Context) {
	h.setWalletStatus(c, h.walletSvc.Unfreeze, "active")
}

func (h *AdminHandler) setWalletStatus(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) error, status string) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	if err := apply(c.Request.Context(), walletID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"wallet_id": walletID.String(), "status": status})
}
