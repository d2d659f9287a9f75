package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkarlis/posledger/internal/adapter/http/dto"
	"github.com/mkarlis/posledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes a rejected operation with its stable wire code, so
// clients branch on the code instead of parsing error text.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(mapDomainError(err))
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Code:    domain.ErrorCode(err),
		Message: err.Error(),
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSheetNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrBalanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSheetNotApproved),
		errors.Is(err, domain.ErrSheetNotDraft),
		errors.Is(err, domain.ErrSheetTerminal),
		errors.Is(err, domain.ErrOrderNotOpen),
		errors.Is(err, domain.ErrOrderPaid),
		errors.Is(err, domain.ErrOrderHasPayments),
		errors.Is(err, domain.ErrSessionClosed),
		errors.Is(err, domain.ErrSessionAlreadyOpen),
		errors.Is(err, domain.ErrNothingToCapture),
		errors.Is(err, domain.ErrContention):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCaptureExceedsRemaining),
		errors.Is(err, domain.ErrRefundExceedsRefundable),
		errors.Is(err, domain.ErrDiscountExceedsTotal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrQuantitySign),
		errors.Is(err, domain.ErrQuantityTooBig),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrUnknownMovementKind),
		errors.Is(err, domain.ErrUnknownPaymentMethod),
		errors.Is(err, domain.ErrUnknownLineKind),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTenantID),
		errors.Is(err, domain.ErrInvalidNotes),
		errors.Is(err, domain.ErrSheetFull):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTenantMismatch):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// tenantFromRequest resolves the caller's tenant. Auth middleware guarantees
// an actor on every protected route.
func tenantFromRequest(r *http.Request) (string, bool) {
	actor, ok := domain.ActorFromContext(r.Context())
	if !ok {
		return "", false
	}
	return actor.TenantID, true
}
