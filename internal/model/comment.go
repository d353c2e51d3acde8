package model

import "time"

// Comment 评论。ParentID 为空表示顶层评论，否则为一层回复。
type Comment struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    PostID    string    `json:"postId" gorm:"type:varchar(36);index:idx_comment_post;not null"`
    ParentID  *string   `json:"parentId,omitempty" gorm:"type:varchar(36);index:idx_comment_parent"`
    Username  string    `json:"username" gorm:"type:varchar(64);not null"`
    Text      string    `json:"text" gorm:"type:text"`
    CreatedAt time.Time `json:"createdDate" gorm:"index"`
}

func (Comment) TableName() string { return "comments" }

// CommentAuthor 评论作者展示块。作者记录缺失时 Name 取 "Unknown User" 哨兵值。
type CommentAuthor struct {
    Username     string `json:"username"`
    Name         string `json:"name"`
    ProfilePhoto string `json:"profilePhoto"`
}

// CommentNode 两层评论树节点（顶层 + 直接回复），只在响应中出现。
type CommentNode struct {
    ID       string        `json:"id"`
    Text     string        `json:"text"`
    Date     time.Time     `json:"date"`
    ParentID *string       `json:"parentId,omitempty"`
    Likes    int64         `json:"likes"`
    Author   CommentAuthor `json:"author"`
    Replies  []CommentNode `json:"replies,omitempty"`
}
