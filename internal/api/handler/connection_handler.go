package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/campuslink/backend/pkg/response"
)

type connectionRequest struct {
    FromUsername string `json:"fromUsername" binding:"required"`
    ToUsername   string `json:"toUsername" binding:"required"`
}

// RequestConnection 发起人脉请求（被拒绝过的可重新发起）
// @Summary 发起人脉请求
// @Tags 人脉
// @Param request body connectionRequest true "双方用户名"
// @Success 201 {object} response.Response
// @Router /api/v1/connections/request [post]
func (h *Handler) RequestConnection(c *gin.Context) {
    var req connectionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    conn, err := h.connSvc.Request(c.Request.Context(), req.FromUsername, req.ToUsername)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Created(c, conn)
}

// AcceptConnection 接受人脉请求
// @Summary 接受人脉请求
// @Tags 人脉
// @Param request body connectionRequest true "双方用户名（from 为发起方）"
// @Success 200 {object} response.Response
// @Router /api/v1/connections/accept [post]
func (h *Handler) AcceptConnection(c *gin.Context) {
    var req connectionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    conn, err := h.connSvc.Accept(c.Request.Context(), req.FromUsername, req.ToUsername)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, conn)
}

// RejectConnection 拒绝人脉请求
// @Summary 拒绝人脉请求
// @Tags 人脉
// @Param request body connectionRequest true "双方用户名（from 为发起方）"
// @Success 200 {object} response.Response
// @Router /api/v1/connections/reject [post]
func (h *Handler) RejectConnection(c *gin.Context) {
    var req connectionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    conn, err := h.connSvc.Reject(c.Request.Context(), req.FromUsername, req.ToUsername)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, conn)
}

// Disconnect 断开人脉（双向删除记录）
// @Summary 断开人脉
// @Tags 人脉
// @Param request body connectionRequest true "双方用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/connections/disconnect [post]
func (h *Handler) Disconnect(c *gin.Context) {
    var req connectionRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if err := h.connSvc.Disconnect(c.Request.Context(), req.FromUsername, req.ToUsername); err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, nil)
}

// ConnectionStatus 查询两人之间的关系状态（视角敏感）
// @Summary 查询人脉状态
// @Tags 人脉
// @Param from query string true "查询方用户名"
// @Param to query string true "对方用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/connections/status [get]
func (h *Handler) ConnectionStatus(c *gin.Context) {
    from, to := c.Query("from"), c.Query("to")
    if from == "" || to == "" {
        response.BadRequest(c, "from and to are required")
        return
    }
    status, err := h.connSvc.Status(c.Request.Context(), from, to)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, gin.H{"status": status})
}

// ListConnections 已建立的人脉名单
// @Summary 查询人脉名单
// @Tags 人脉
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/connections [get]
func (h *Handler) ListConnections(c *gin.Context) {
    username := c.Query("username")
    if username == "" {
        response.BadRequest(c, "username is required")
        return
    }
    list, err := h.connSvc.ListFor(c.Request.Context(), username)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, list)
}

// ListPendingConnections 待处理的人脉请求（从接收方视角）
// @Summary 查询待处理请求
// @Tags 人脉
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/connections/pending [get]
func (h *Handler) ListPendingConnections(c *gin.Context) {
    username := c.Query("username")
    if username == "" {
        response.BadRequest(c, "username is required")
        return
    }
    list, err := h.connSvc.PendingFor(c.Request.Context(), username)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, list)
}
