package api

import (
    "regexp"

    sentrygin "github.com/getsentry/sentry-go/gin"
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/campuslink/backend/config"
    "github.com/campuslink/backend/internal/api/handler"
    "github.com/campuslink/backend/internal/api/middleware"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

func registerValidations() {
    if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
        _ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
            return usernameRe.MatchString(fl.Field().String())
        })
    }
}

// NewRouter 组装全部中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
    gin.SetMode(cfg.Server.Mode)
    registerValidations()

    r := gin.New()
    r.Use(middleware.RequestLogger())
    r.Use(gin.Recovery())
    r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
    r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

    r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

    v1 := r.Group("/api/v1")

    posts := v1.Group("/posts")
    {
        posts.POST("", h.CreatePost)
        posts.GET("", h.ListUserPosts)
        posts.GET("/feed", h.Feed)
        posts.GET("/user-likes", h.ListUserLikedPosts)
        posts.GET("/user-comment-likes", h.ListUserLikedComments)
        posts.POST("/comments/:commentId/like", h.ToggleCommentLike)
        posts.POST("/:id/like", h.TogglePostLike)
        posts.POST("/:id/comments", h.AddComment)
        posts.GET("/:id/comments", h.ListComments)
        posts.POST("/:id/comments/:commentId/replies", h.AddReply)
        posts.DELETE("/:id", h.DeletePost)
    }

    users := v1.Group("/users")
    {
        users.POST("", h.Register)
        users.POST("/otp", h.RequestOTP)
        users.POST("/otp/verify", h.VerifyOTP)
        users.GET("/:username", h.GetUser)
        users.DELETE("/:username", h.DeleteUser)
    }

    conns := v1.Group("/connections")
    {
        conns.GET("", h.ListConnections)
        conns.GET("/pending", h.ListPendingConnections)
        conns.GET("/status", h.ConnectionStatus)
        conns.POST("/request", h.RequestConnection)
        conns.POST("/accept", h.AcceptConnection)
        conns.POST("/reject", h.RejectConnection)
        conns.POST("/disconnect", h.Disconnect)
    }

    msgs := v1.Group("/messages")
    {
        msgs.POST("", h.SendMessage)
        msgs.GET("", h.Conversation)
        msgs.POST("/read", h.MarkMessagesRead)
    }

    return r
}
