package httptransport

import (
	"encoding/json"
	"net/http"

	"emart-gateway/internal/downstream/orderproc"
	"emart-gateway/internal/order"
	dErrors "emart-gateway/pkg/domain-errors"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds orderproc.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusUnauthorized, "Login failed")
		return
	}

	result, err := h.catalog.ValidateUser(r.Context(), creds)
	if err != nil || !result.Success() {
		if err != nil {
			h.logger.ErrorContext(r.Context(), "login failed", "user_id", creds.UserID, "error", err)
		}
		writeMessage(w, http.StatusUnauthorized, "Login failed")
		return
	}

	writeRaw(w, http.StatusOK, result.Raw)
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	body, err := h.catalog.Products(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "product fetch failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Could not fetch products")
		return
	}
	writeRaw(w, http.StatusOK, body)
}

func (h *Handler) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var sub order.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing or invalid order fields")
		return
	}

	result, err := h.orders.Submit(r.Context(), sub)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			writeMessage(w, http.StatusBadRequest, dErrors.MessageOf(err, "Missing or invalid order fields"))
			return
		}
		h.logger.ErrorContext(r.Context(), "submit order failed", "user_id", sub.UserID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Could not submit order")
		return
	}

	writeRaw(w, http.StatusOK, result)
}
