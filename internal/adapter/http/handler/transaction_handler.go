package handler

import (
	"custodial-wallet/internal/adapter/http/dto"
	"custodial-wallet/internal/adapter/http/middleware"
	"custodial-wallet/internal/core/ports"
	"custodial-wallet/pkg/apperror"
	"custodial-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles money movement endpoints.
type TransactionHandler struct {
	txSvc ports.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txSvc ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

// Transfer handles POST /api/v1/transactions/transfer.
func (h *TransactionHandler) Transfer(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	sourceID, err := uuid.Parse(req.SourceWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid source wallet id"))
		return
	}
	amount, ok := dto.ParseAmount(req.Amount)
	if !ok {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	result, err := h.txSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		AccountID:               accountID,
		SourceWalletID:          sourceID,
		DestinationWalletNumber: req.DestinationWalletNumber,
		Amount:                  amount,
		Description:             req.Description,
		IPAddress:               c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromTransaction(result))
}

// Deposit handles POST /api/v1/transactions/deposit.
func (h *TransactionHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}
	amount, ok := dto.ParseAmount(req.Amount)
	if !ok {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	result, err := h.txSvc.Deposit(c.Request.Context(), ports.DepositRequest{
		WalletID:          walletID,
		Amount:            amount,
		ExternalReference: req.ExternalReference,
		Gateway:           req.Gateway,
		IPAddress:         c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromTransaction(result))
}

// Withdraw handles POST /api/v1/transactions/withdraw.
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}
	amount, ok := dto.ParseAmount(req.Amount)
	if !ok {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	result, err := h.txSvc.Withdraw(c.Request.Context(), ports.WithdrawRequest{
		AccountID:   accountID,
		WalletID:    walletID,
		Amount:      amount,
		Destination: req.Destination,
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromTransaction(result))
}

// GetByReference handles GET /api/v1/transactions/:reference.
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.txSvc.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	role, _ := c.Get(middleware.CtxRole)
	if result.AccountID != accountID && role != middleware.RoleAdmin {
		// Hide other accounts' transactions rather than confirming existence.
		response.Error(c, apperror.ErrTransactionNotFound())
		return
	}

	response.OK(c, dto.FromTransaction(result))
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	page, pageSize := pagination(c)
	items, total, err := h.txSvc.ListAccountTransactions(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.FromTransaction(&items[i]))
	}
	response.OK(c, dto.TransactionListResponse{
		Items:      out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: dto.TotalPages(total, pageSize),
	})
}
