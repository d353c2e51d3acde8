package service

import "errors"

// 业务哨兵错误，由 handler 层用 errors.Is 翻译成 HTTP 状态码
var (
    ErrUserNotFound       = errors.New("user not found")
    ErrPostNotFound       = errors.New("post not found")
    ErrCommentNotFound    = errors.New("comment not found")
    ErrConnectionNotFound = errors.New("connection request not found")
    ErrUsernameTaken      = errors.New("username already taken")
    ErrSelfConnection     = errors.New("cannot connect to self")
)
