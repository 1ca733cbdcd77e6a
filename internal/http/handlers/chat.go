package handlers

import (
	"net/http"

	"food-delivery-dispatch/internal/logx"
)

// ChatHandler serves conversation endpoints for customers and restaurant owners.
type ChatHandler struct {
	usecase chatUsecase
	logger  logx.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(logger logx.Logger, uc chatUsecase) *ChatHandler {
	return &ChatHandler{usecase: uc, logger: orNop(logger)}
}

// Start handles POST /conversations. It returns the existing conversation
// when there is one.
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	var req startConversationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	conv, err := h.usecase.StartConversation(r.Context(), who, req.OtherID, req.RestaurantID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, conversationToResponse(conv, who))
}

// List handles GET /conversations.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
		return
	}
	list, err := h.usecase.ListConversations(r.Context(), who, int(limit))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, conversationsToResponse(list, who))
}

// Messages handles GET /conversations/{id}/messages?limit=&before=.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
		return
	}
	before, ok := queryInt(r, "before", 0)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid before")
		return
	}

	msgs, err := h.usecase.ListMessages(r.Context(), who, id, int(limit), before)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, msgs)
}

// Send handles POST /conversations/{id}/messages.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req sendMessageRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	msg, err := h.usecase.SendMessage(r.Context(), who, id, req.Body)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, msg)
}

// Read handles POST /conversations/{id}/read.
func (h *ChatHandler) Read(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	n, err := h.usecase.MarkConversationRead(r.Context(), who, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, markReadResponse{Marked: n})
}
