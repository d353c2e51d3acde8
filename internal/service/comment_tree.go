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

// unknownAuthorName 作者记录缺失时评论侧使用的哨兵值
const unknownAuthorName = "Unknown User"

// CommentTreeFormatter 把一个帖子的平铺评论整理成两层树
// （顶层 + 直接回复，均按时间升序），并补齐点赞数与作者展示块。
// 固定只展开一层：回复的回复即使落了库也不会出现在结果里。
type CommentTreeFormatter struct {
    users        repository.UserRepository
    commentLikes repository.CommentLikeRepository
}

func NewCommentTreeFormatter(users repository.UserRepository, commentLikes repository.CommentLikeRepository) *CommentTreeFormatter {
    return &CommentTreeFormatter{users: users, commentLikes: commentLikes}
}

// Format 输入必须是同一帖子按创建时间升序的全部评论
func (f *CommentTreeFormatter) Format(ctx context.Context, comments []*model.Comment) []model.CommentNode {
    var topLevel []*model.Comment
    replies := make(map[string][]*model.Comment)
    for _, c := range comments {
        if c.ParentID == nil {
            topLevel = append(topLevel, c)
        } else {
            replies[*c.ParentID] = append(replies[*c.ParentID], c)
        }
    }

    out := make([]model.CommentNode, 0, len(topLevel))
    for _, c := range topLevel {
        node := f.formatOne(ctx, c)
        for _, r := range replies[c.ID] {
            node.Replies = append(node.Replies, f.formatOne(ctx, r))
        }
        out = append(out, node)
    }
    return out
}

func (f *CommentTreeFormatter) formatOne(ctx context.Context, c *model.Comment) model.CommentNode {
    node := model.CommentNode{
        ID:       c.ID,
        Text:     c.Text,
        Date:     c.CreatedAt,
        ParentID: c.ParentID,
    }

    likes, err := f.commentLikes.CountByCommentID(ctx, c.ID)
    if err != nil {
        logger.Warn("count comment likes", zap.String("comment", c.ID), zap.Error(err))
    }
    node.Likes = likes

    author, err := f.users.FindByUsername(ctx, c.Username)
    if err != nil {
        if !errors.Is(err, gorm.ErrRecordNotFound) {
            logger.Warn("resolve comment author", zap.String("username", c.Username), zap.Error(err))
        }
        node.Author = model.CommentAuthor{Username: c.Username, Name: unknownAuthorName}
        return node
    }
    node.Author = model.CommentAuthor{
        Username:     author.Username,
        Name:         author.FirstName + " " + author.LastName,
        ProfilePhoto: author.ProfilePhoto,
    }
    return node
}
