package httptransport

import (
	"encoding/json"
	"net/http"

	"emart-gateway/internal/payment"
	dErrors "emart-gateway/pkg/domain-errors"
)

//go:generate mockgen -source=router.go -destination=mocks/payment-mocks.go -package=mocks PaymentService

func (h *Handler) handleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	var req payment.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing or invalid user_id, amount, or items"})
		return
	}

	result, err := h.payments.Pay(r.Context(), req)
	if err != nil {
		h.writePaymentError(w, r, req.UserID, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writePaymentError maps orchestration failures onto the payment route's
// {"error"[, "reason"]} envelope.
func (h *Handler) writePaymentError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	switch code := dErrors.CodeOf(err); code {
	case dErrors.CodeValidation:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": dErrors.MessageOf(err, "Missing or invalid user_id, amount, or items"),
		})
	case dErrors.CodeGatewayTimeout:
		writeJSON(w, http.StatusGatewayTimeout, map[string]string{"error": "Gateway Timeout"})
	case dErrors.CodeComplianceRejected:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Compliance check failed",
			"reason": dErrors.MessageOf(err, "Unknown compliance failure"),
		})
	default:
		h.logger.ErrorContext(r.Context(), "payment failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": dErrors.MessageOf(err, "Payment/Order processing failed"),
		})
	}
}
