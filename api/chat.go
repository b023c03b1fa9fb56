package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phamhoang/duocsi-chat/domain"
)

// User-facing messages. Internal causes are logged, never returned.
const (
	msgInvalidInput     = "Dữ liệu không hợp lệ"
	msgMessageBlocked   = "Tin nhắn không được hỗ trợ. Vui lòng đặt câu hỏi khác."
	msgGenerationFailed = "Không thể kết nối với dịch vụ AI. Vui lòng thử lại sau."
	msgHistoryFailed    = "Không thể tải lịch sử chat"
	msgInternal         = "Có lỗi xảy ra khi xử lý tin nhắn"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// PostChat submits one chat turn.
// POST /api/chat
func (h *Handler) PostChat(c echo.Context) error {
	ctx := c.Request().Context()

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": msgInvalidInput})
	}

	turn, err := h.service.HandleUserMessage(ctx, req.SessionID, req.Message)
	if err != nil {
		var invalid *domain.InvalidInputError
		switch {
		case errors.As(err, &invalid):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"message": msgInvalidInput,
				"errors":  invalid.Fields,
			})
		case errors.Is(err, domain.ErrMessageBlocked):
			return c.JSON(http.StatusBadRequest, map[string]string{"message": msgMessageBlocked})
		case errors.Is(err, domain.ErrGenerationFailed):
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": msgGenerationFailed})
		default:
			log.Printf("ERROR: chat turn failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": msgInternal})
		}
	}

	return c.JSON(http.StatusOK, turn)
}

// GetChatHistory returns the recent transcript of a session.
// GET /api/chat/:session_id
func (h *Handler) GetChatHistory(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	messages, err := h.service.GetHistory(ctx, sessionID)
	if err != nil {
		log.Printf("ERROR: failed to get history: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": msgHistoryFailed})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}
