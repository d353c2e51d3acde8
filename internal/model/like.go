package model

import "time"

// PostLike 帖子点赞
type PostLike struct {
    ID       string `gorm:"primaryKey;type:varchar(36)"`
    PostID   string `gorm:"type:varchar(36);index:idx_post_like_post;index:idx_post_like_pair,unique;not null"`
    Username string `gorm:"type:varchar(64);index:idx_post_like_user;index:idx_post_like_pair,unique;not null"`
    // 复合唯一键，杜绝同一用户对同一帖子的重复点赞
    // idx_post_like_pair = (post_id, username)
    CreatedAt time.Time
}

func (PostLike) TableName() string { return "post_likes" }

// CommentLike 评论点赞
type CommentLike struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    CommentID string `gorm:"type:varchar(36);index:idx_comment_like_comment;index:idx_comment_like_pair,unique;not null"`
    Username  string `gorm:"type:varchar(64);index:idx_comment_like_user;index:idx_comment_like_pair,unique;not null"`
    CreatedAt time.Time
}

func (CommentLike) TableName() string { return "comment_likes" }
