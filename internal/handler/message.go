package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/service"
)

// MessageHandler serves user-to-user messages.
type MessageHandler struct {
	Messages *service.MessageService
}

func NewMessageHandler(m *service.MessageService) *MessageHandler {
	return &MessageHandler{Messages: m}
}

type sendMessageReq struct {
	ReceiverUsername string `json:"receiver_username"`
	Subject          string `json:"subject"`
	Body             string `json:"body"`
}

// Send stores a message from the caller, addressed to a username.
func (h *MessageHandler) Send(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	m := model.Message{Subject: req.Subject, Body: req.Body}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Messages.Send(ctx, id, req.ReceiverUsername, &m); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// List returns the caller's messages, or everything for admins.
func (h *MessageHandler) List(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return serviceError(c, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	msgs, err := h.Messages.ListForCaller(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}
