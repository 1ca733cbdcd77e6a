package handlers

import (
	"net/http"
	"strconv"

	"food-delivery-dispatch/internal/logx"
)

// NotificationHandler serves the notification inbox.
type NotificationHandler struct {
	usecase notificationUsecase
	logger  logx.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(logger logx.Logger, uc notificationUsecase) *NotificationHandler {
	return &NotificationHandler{usecase: uc, logger: orNop(logger)}
}

// List handles GET /notifications?unread=true&limit=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
		return
	}
	var unreadOnly bool
	if s := r.URL.Query().Get("unread"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid unread")
			return
		}
		unreadOnly = v
	}

	list, err := h.usecase.ListNotifications(r.Context(), who, int(limit), unreadOnly)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// Read handles POST /notifications/{id}/read.
func (h *NotificationHandler) Read(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.usecase.MarkNotificationRead(r.Context(), who, id); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
