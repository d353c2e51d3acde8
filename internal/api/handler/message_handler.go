package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/campuslink/backend/internal/service"
    "github.com/campuslink/backend/pkg/response"
)

type sendMessageRequest struct {
    FromUsername   string `json:"fromUsername" binding:"required"`
    ToUsername     string `json:"toUsername" binding:"required"`
    Text           string `json:"text" binding:"required"`
    AttachmentURL  string `json:"attachmentUrl"`
    AttachmentType string `json:"attachmentType" binding:"omitempty,oneof=image video document"`
    AttachmentName string `json:"attachmentName"`
}

type markReadRequest struct {
    FromUsername string `json:"fromUsername" binding:"required"`
    ToUsername   string `json:"toUsername" binding:"required"`
}

// SendMessage 发送私信（存储转发，不做实时投递）
// @Summary 发送私信
// @Tags 私信
// @Param request body sendMessageRequest true "私信内容"
// @Success 201 {object} response.Response
// @Router /api/v1/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
    var req sendMessageRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    msg, err := h.msgSvc.Send(c.Request.Context(), service.SendMessageInput{
        FromUsername:   req.FromUsername,
        ToUsername:     req.ToUsername,
        Text:           req.Text,
        AttachmentURL:  req.AttachmentURL,
        AttachmentType: req.AttachmentType,
        AttachmentName: req.AttachmentName,
    })
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Created(c, msg)
}

// Conversation 两人之间的消息记录（时间升序）
// @Summary 查询会话
// @Tags 私信
// @Param user1 query string true "用户名"
// @Param user2 query string true "用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/messages [get]
func (h *Handler) Conversation(c *gin.Context) {
    a, b := c.Query("user1"), c.Query("user2")
    if a == "" || b == "" {
        response.BadRequest(c, "user1 and user2 are required")
        return
    }
    msgs, err := h.msgSvc.Conversation(c.Request.Context(), a, b)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, msgs)
}

// MarkMessagesRead 把 from→to 的未读消息置为已读
// @Summary 消息已读回执
// @Tags 私信
// @Param request body markReadRequest true "会话双方"
// @Success 200 {object} response.Response
// @Router /api/v1/messages/read [post]
func (h *Handler) MarkMessagesRead(c *gin.Context) {
    var req markReadRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.msgSvc.MarkRead(c.Request.Context(), req.FromUsername, req.ToUsername); err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, nil)
}
