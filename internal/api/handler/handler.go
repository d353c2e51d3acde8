package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/campuslink/backend/internal/service"
    "github.com/campuslink/backend/pkg/response"
)

// Handler 聚合全部 HTTP 入口
type Handler struct {
    postSvc service.PostService
    feedSvc service.FeedService
    connSvc service.ConnectionService
    userSvc service.UserService
    msgSvc  service.MessageService
    otpSvc  *service.OTPService
}

func New(
    postSvc service.PostService,
    feedSvc service.FeedService,
    connSvc service.ConnectionService,
    userSvc service.UserService,
    msgSvc service.MessageService,
    otpSvc *service.OTPService,
) *Handler {
    return &Handler{
        postSvc: postSvc,
        feedSvc: feedSvc,
        connSvc: connSvc,
        userSvc: userSvc,
        msgSvc:  msgSvc,
        otpSvc:  otpSvc,
    }
}

// respondError 把业务哨兵错误翻译成结构化状态码：
// 缺失资源 404，请求不成立 400，其余 500
func (h *Handler) respondError(c *gin.Context, err error) {
    switch {
    case errors.Is(err, service.ErrPostNotFound),
        errors.Is(err, service.ErrCommentNotFound),
        errors.Is(err, service.ErrUserNotFound),
        errors.Is(err, service.ErrConnectionNotFound):
        response.NotFound(c, err.Error())
    case errors.Is(err, service.ErrUsernameTaken),
        errors.Is(err, service.ErrSelfConnection):
        response.BadRequest(c, err.Error())
    default:
        response.InternalError(c, err)
    }
}
