package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "emart-gateway/pkg/domain-errors"
)

type sendOTPRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Username string `json:"username"`
	OTP      string `json:"otp"`
}

func (h *Handler) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if err := h.otp.Issue(r.Context(), req.Username, req.Password); err != nil {
		code := dErrors.CodeOf(err)
		h.logger.ErrorContext(r.Context(), "send otp failed", "user_id", req.Username, "error", err)
		writeMessage(w, dErrors.ToHTTPStatus(code), dErrors.MessageOf(err, "Failed to send OTP email"))
		return
	}

	writeMessage(w, http.StatusOK, "OTP sent successfully")
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "username and otp are required")
		return
	}

	if err := h.otp.Verify(r.Context(), req.Username, req.OTP); err != nil {
		writeMessage(w, dErrors.ToHTTPStatus(dErrors.CodeOf(err)), dErrors.MessageOf(err, "Invalid OTP"))
		return
	}

	writeMessage(w, http.StatusOK, "OTP verified successfully")
}
