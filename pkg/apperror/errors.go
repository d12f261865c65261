package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

func ErrUnauthorizedWallet() *AppError {
	return New("WAL_002", "Unauthorized wallet access", http.StatusForbidden)
}

func ErrWalletFrozen() *AppError {
	return New("WAL_003", "Wallet is frozen", http.StatusForbidden)
}

func ErrWalletExists(currency string) *AppError {
	return New("WAL_004", fmt.Sprintf("Wallet already exists for currency %s", currency), http.StatusConflict)
}

func ErrCurrencyMismatch() *AppError {
	return New("WAL_005", "Source and destination currencies do not match", http.StatusBadRequest)
}

func ErrInvalidWalletState(msg string) *AppError {
	return New("WAL_006", msg, http.StatusConflict)
}

// ---- Money movement (PAY) ----

func ErrInsufficientBalance() *AppError {
	return New("PAY_001", "Insufficient balance", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("PAY_002", "Amount must be positive", http.StatusBadRequest)
}

func ErrPerTransactionLimit(tier string) *AppError {
	return New("PAY_003", fmt.Sprintf("Amount exceeds per-transaction limit for %s", tier), http.StatusUnprocessableEntity)
}

func ErrDailyLimit(tier string) *AppError {
	return New("PAY_004", fmt.Sprintf("Daily transaction limit exceeded for %s", tier), http.StatusUnprocessableEntity)
}

func ErrTransactionNotFound() *AppError {
	return New("PAY_005", "Transaction not found", http.StatusNotFound)
}

func ErrNotReversible() *AppError {
	return New("PAY_006", "Only successful, non-reversal transactions can be reversed", http.StatusConflict)
}

func ErrAccountNotFound() *AppError {
	return New("PAY_007", "Account not found", http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidPin() *AppError {
	return New("AUTH_002", "Invalid wallet PIN", http.StatusForbidden)
}

func ErrForbidden() *AppError {
	return New("AUTH_003", "Insufficient privileges", http.StatusForbidden)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("PAY_002", message, http.StatusBadRequest)
}
