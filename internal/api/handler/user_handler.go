package handler

import (
    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "github.com/campuslink/backend/internal/service"
    "github.com/campuslink/backend/pkg/logger"
    "github.com/campuslink/backend/pkg/response"
)

type registerRequest struct {
    Username     string `json:"username" binding:"required,username"`
    Password     string `json:"password" binding:"required,min=8"`
    Email        string `json:"email" binding:"required,email"`
    FirstName    string `json:"firstName" binding:"required"`
    LastName     string `json:"lastName" binding:"required"`
    ProfilePhoto string `json:"profilePhoto"`
    Major        string `json:"major"`
    Department   string `json:"department"`
}

type otpRequest struct {
    Email string `json:"email" binding:"required,email"`
}

type otpVerifyRequest struct {
    Email string `json:"email" binding:"required,email"`
    Code  string `json:"code" binding:"required"`
}

// Register 注册用户
// @Summary 注册用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/users [post]
func (h *Handler) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    user, err := h.userSvc.Register(c.Request.Context(), service.RegisterInput{
        Username:     req.Username,
        Password:     req.Password,
        Email:        req.Email,
        FirstName:    req.FirstName,
        LastName:     req.LastName,
        ProfilePhoto: req.ProfilePhoto,
        Major:        req.Major,
        Department:   req.Department,
    })
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Created(c, user)
}

// GetUser 查询用户资料
// @Summary 查询用户
// @Tags 用户
// @Param username path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username} [get]
func (h *Handler) GetUser(c *gin.Context) {
    user, err := h.userSvc.Get(c.Request.Context(), c.Param("username"))
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, user)
}

// DeleteUser 删除账号及其全部足迹
// @Summary 删除账号
// @Tags 用户
// @Param username path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
    if err := h.userSvc.DeleteAccount(c.Request.Context(), c.Param("username")); err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, nil)
}

// RequestOTP 生成邮箱验证码。邮件投递不在本服务内，验证码只打到 debug 日志。
// @Summary 发送邮箱验证码
// @Tags 用户
// @Param request body otpRequest true "邮箱"
// @Success 200 {object} response.Response
// @Router /api/v1/users/otp [post]
func (h *Handler) RequestOTP(c *gin.Context) {
    var req otpRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    code := h.otpSvc.Generate(req.Email)
    logger.Debug("otp issued", zap.String("email", req.Email), zap.String("code", code))
    response.Success(c, nil)
}

// VerifyOTP 校验邮箱验证码（单次有效）
// @Summary 校验邮箱验证码
// @Tags 用户
// @Param request body otpVerifyRequest true "邮箱与验证码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/users/otp/verify [post]
func (h *Handler) VerifyOTP(c *gin.Context) {
    var req otpVerifyRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    if !h.otpSvc.Validate(req.Email, req.Code) {
        response.BadRequest(c, "invalid or expired otp")
        return
    }
    response.Success(c, nil)
}
