package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/csg33k/approval-form/internal/submission"
)

const maxBodyBytes = 1 << 20

// Response messages of the submission endpoint.
const (
	MsgMissingFields = "فیلدهای ضروری را پر کنید"
	MsgBadRequest    = "درخواست نامعتبر است"
	MsgUnknownForm   = "نوع فرم نامعتبر است"
	MsgSendFailed    = "خطا در ارسال فرم"
	MsgSent          = "فرم با موفقیت ارسال شد!"
)

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// sendEmail handles the submission endpoint: decode, validate, then email
// the admin and the submitter. 200 only if both emails went out.
func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	sub, err := h.decoder.Decode(r.Body)
	if err != nil {
		h.Log.Info("submission rejected", zap.Error(err))
		switch {
		case errors.Is(err, submission.ErrMissingFields):
			writeError(w, http.StatusBadRequest, MsgMissingFields)
		case errors.Is(err, submission.ErrUnknownVariant):
			writeError(w, http.StatusBadRequest, MsgUnknownForm)
		default:
			writeError(w, http.StatusBadRequest, MsgBadRequest)
		}
		return
	}

	id, err := h.submitter.Submit(r.Context(), sub)
	if err != nil {
		h.Log.Error("submission failed",
			zap.String("id", id),
			zap.String("variant", string(sub.Variant)),
			zap.Error(err))
		details := id
		if h.exposeErrors {
			details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: MsgSendFailed, Details: details})
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{Success: true, Message: MsgSent, ID: id})
}
