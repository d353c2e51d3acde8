package service

import (
    "context"
    "errors"

    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
    "github.com/campuslink/backend/pkg/logger"
)

// PostEnricher 为已取出的帖子补齐点赞数、作者展示字段和嵌套评论树。
// 单个帖子的某一步失败只降级该帖子的对应字段，不中断整批。
type PostEnricher struct {
    users     repository.UserRepository
    postLikes repository.PostLikeRepository
    comments  repository.CommentRepository
    formatter *CommentTreeFormatter
}

func NewPostEnricher(
    users repository.UserRepository,
    postLikes repository.PostLikeRepository,
    comments repository.CommentRepository,
    formatter *CommentTreeFormatter,
) *PostEnricher {
    return &PostEnricher{users: users, postLikes: postLikes, comments: comments, formatter: formatter}
}

func (e *PostEnricher) Enrich(ctx context.Context, posts []*model.Post) {
    for _, p := range posts {
        if cnt, err := e.postLikes.CountByPostID(ctx, p.ID); err == nil {
            p.LikeCount = cnt
        } else {
            logger.Warn("count post likes", zap.String("post", p.ID), zap.Error(err))
        }

        author, err := e.users.FindByUsername(ctx, p.Username)
        switch {
        case err == nil:
            p.AuthorUsername = p.Username
            p.AuthorName = author.FirstName + " " + author.LastName
            p.AuthorProfilePhoto = author.ProfilePhoto
            p.AuthorMajor = author.Major
        case errors.Is(err, gorm.ErrRecordNotFound):
            // 作者缺失时帖子侧字段留空（评论侧用 Unknown User 哨兵）
        default:
            logger.Warn("resolve post author", zap.String("username", p.Username), zap.Error(err))
        }

        if cs, err := e.comments.ListByPostID(ctx, p.ID); err == nil {
            p.Comments = e.formatter.Format(ctx, cs)
        } else {
            logger.Warn("load post comments", zap.String("post", p.ID), zap.Error(err))
        }
        if p.Comments == nil {
            p.Comments = []model.CommentNode{}
        }
    }
}
