package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/campuslink/backend/internal/service"
    "github.com/campuslink/backend/pkg/response"
)

type createPostRequest struct {
    Text      string   `json:"text" binding:"required"`
    Username  string   `json:"username" binding:"required"`
    Hashtags  []string `json:"hashtags"`
    ImageURLs []string `json:"imageUrls"`
    VideoURLs []string `json:"videoUrls"`
}

type likeRequest struct {
    Username string `json:"username" binding:"required"`
    IsLiked  *bool  `json:"isLiked" binding:"required"`
}

type commentRequest struct {
    Text     string `json:"text" binding:"required"`
    Username string `json:"username" binding:"required"`
}

// CreatePost 发帖
// @Summary 发布帖子（话题标签惰性创建）
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
    var req createPostRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    post, err := h.postSvc.CreatePost(c.Request.Context(), service.CreatePostInput{
        Username:  req.Username,
        Text:      req.Text,
        Hashtags:  req.Hashtags,
        ImageURLs: req.ImageURLs,
        VideoURLs: req.VideoURLs,
    })
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Created(c, post)
}

// ListUserPosts 查询某用户的帖子（含点赞数、作者块与评论树）
// @Summary 查询用户帖子
// @Tags 帖子
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) ListUserPosts(c *gin.Context) {
    username := c.Query("username")
    if username == "" {
        response.BadRequest(c, "username is required")
        return
    }
    posts, err := h.postSvc.PostsByUsername(c.Request.Context(), username)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, posts)
}

// TogglePostLike 帖子点赞开关（幂等）
// @Summary 点赞/取消点赞帖子
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Param request body likeRequest true "点赞动作"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) TogglePostLike(c *gin.Context) {
    var req likeRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    count, err := h.postSvc.SetPostLike(c.Request.Context(), c.Param("id"), req.Username, *req.IsLiked)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, gin.H{"likeCount": count})
}

// ListUserLikedPosts 用户点赞过的帖子ID
// @Summary 查询用户点赞过的帖子
// @Tags 帖子
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/user-likes [get]
func (h *Handler) ListUserLikedPosts(c *gin.Context) {
    username := c.Query("username")
    if username == "" {
        response.BadRequest(c, "username is required")
        return
    }
    ids, err := h.postSvc.LikedPostIDs(c.Request.Context(), username)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, ids)
}

// AddComment 评论帖子
// @Summary 发表评论
// @Tags 评论
// @Param id path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 201 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
    var req commentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    comment, err := h.postSvc.AddComment(c.Request.Context(), c.Param("id"), req.Username, req.Text)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Created(c, comment)
}

// ListComments 帖子的平铺评论列表（时间升序）
// @Summary 查询帖子评论
// @Tags 评论
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
    comments, err := h.postSvc.CommentsByPost(c.Request.Context(), c.Param("id"))
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, comments)
}

// AddReply 回复顶层评论
// @Summary 回复评论
// @Tags 评论
// @Param id path string true "帖子ID"
// @Param commentId path string true "父评论ID"
// @Param request body commentRequest true "回复内容"
// @Success 201 {object} response.Response
// @Router /api/v1/posts/{id}/comments/{commentId}/replies [post]
func (h *Handler) AddReply(c *gin.Context) {
    var req commentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    reply, err := h.postSvc.AddReply(c.Request.Context(), c.Param("id"), c.Param("commentId"), req.Username, req.Text)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Created(c, reply)
}

// ToggleCommentLike 评论点赞开关（幂等）
// @Summary 点赞/取消点赞评论
// @Tags 评论
// @Param commentId path string true "评论ID"
// @Param request body likeRequest true "点赞动作"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/comments/{commentId}/like [post]
func (h *Handler) ToggleCommentLike(c *gin.Context) {
    var req likeRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    count, err := h.postSvc.SetCommentLike(c.Request.Context(), c.Param("commentId"), req.Username, *req.IsLiked)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, gin.H{"likeCount": count})
}

// ListUserLikedComments 用户点赞过的评论ID
// @Summary 查询用户点赞过的评论
// @Tags 评论
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/user-comment-likes [get]
func (h *Handler) ListUserLikedComments(c *gin.Context) {
    username := c.Query("username")
    if username == "" {
        response.BadRequest(c, "username is required")
        return
    }
    ids, err := h.postSvc.LikedCommentIDs(c.Request.Context(), username)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, ids)
}

// DeletePost 级联删除帖子
// @Summary 删除帖子（连同评论与点赞）
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
    if err := h.postSvc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, nil)
}

// Feed 信息流：自己 + 已连接用户的帖子，按时间倒序
// @Summary 查询信息流
// @Tags 帖子
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/feed [get]
func (h *Handler) Feed(c *gin.Context) {
    username := c.Query("username")
    if username == "" {
        response.BadRequest(c, "username is required")
        return
    }
    posts, err := h.feedSvc.BuildFeed(c.Request.Context(), username)
    if err != nil {
        h.respondError(c, err)
        return
    }
    response.Success(c, posts)
}
