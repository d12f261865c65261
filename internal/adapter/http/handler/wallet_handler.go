package handler

import (
	"strconv"

	"custodial-wallet/internal/adapter/http/dto"
	"custodial-wallet/internal/adapter/http/middleware"
	"custodial-wallet/internal/core/domain"
	"custodial-wallet/internal/core/ports"
	"custodial-wallet/pkg/apperror"
	"custodial-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{
		walletSvc: walletSvc,
		ledgerSvc: ledgerSvc,
	}
}

// CreateWallet handles POST /api/v1/wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet, err := h.walletSvc.CreateWallet(c.Request.Context(), accountID, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromWallet(wallet))
}

// ListWallets handles GET /api/v1/wallets.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallets, err := h.walletSvc.GetAccountWallets(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		out = append(out, dto.FromWallet(&wallets[i]))
	}
	response.OK(c, out)
}

// GetWallet handles GET /api/v1/wallets/:id.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, ok := h.ownedWallet(c)
	if !ok {
		return
	}
	response.OK(c, dto.FromWallet(wallet))
}

// GetLedger handles GET /api/v1/wallets/:id/ledger — the wallet statement,
// newest entries first.
func (h *WalletHandler) GetLedger(c *gin.Context) {
	wallet, ok := h.ownedWallet(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	entries, err := h.ledgerSvc.GetWalletLedger(c.Request.Context(), wallet.ID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.FromLedgerEntry(&entries[i]))
	}
	response.OK(c, out)
}

// AuditBalance handles GET /api/v1/wallets/:id/audit. Recomputes the balance
// from the journal and compares it with the cached wallet balance.
func (h *WalletHandler) AuditBalance(c *gin.Context) {
	wallet, ok := h.ownedWallet(c)
	if !ok {
		return
	}

	journalBalance, err := h.ledgerSvc.CalculateBalance(c.Request.Context(), wallet.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceAuditResponse{
		WalletID:       wallet.ID.String(),
		CachedBalance:  wallet.Balance.String(),
		JournalBalance: journalBalance.String(),
		Consistent:     wallet.Balance.Equal(journalBalance),
	})
}

// SetPin handles PUT /api/v1/wallets/:id/pin.
func (h *WalletHandler) SetPin(c *gin.Context) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	var req dto.SetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.walletSvc.SetPin(c.Request.Context(), walletID, accountID, req.Pin); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"status": "pin_set"})
}

// ownedWallet resolves the :id path param and enforces that the caller owns
// the wallet. Writes the error response itself on failure.
func (h *WalletHandler) ownedWallet(c *gin.Context) (*domain.Wallet, bool) {
	accountID, ok := contextAccountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return nil, false
	}

	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return nil, false
	}

	wallet, err := h.walletSvc.GetByID(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if wallet.AccountID != accountID {
		response.Error(c, apperror.ErrUnauthorizedWallet())
		return nil, false
	}
	return wallet, true
}

func contextAccountID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.CtxAccountID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
