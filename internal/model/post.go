package model

import "time"

// Post 帖子主体。作者以 username 字符串外键引用，避免与 User 形成对象环。
type Post struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    Username  string    `json:"username" gorm:"type:varchar(64);index:idx_post_author;not null"`
    Text      string    `json:"text" gorm:"type:text"`
    ImageURLs []string  `json:"imageUrls" gorm:"serializer:json;type:text"`
    VideoURLs []string  `json:"videoUrls" gorm:"serializer:json;type:text"`
    Hashtags  []Hashtag `json:"hashtags" gorm:"many2many:post_hashtags"`
    CreatedAt time.Time `json:"createdDate" gorm:"index"`
    UpdatedAt time.Time `json:"-"`

    // 以下为响应期计算字段，不落库
    LikeCount          int64         `json:"likeCount" gorm:"-"`
    AuthorUsername     string        `json:"authorUsername,omitempty" gorm:"-"`
    AuthorName         string        `json:"authorName,omitempty" gorm:"-"`
    AuthorProfilePhoto string        `json:"authorProfilePhoto,omitempty" gorm:"-"`
    AuthorMajor        string        `json:"authorMajor,omitempty" gorm:"-"`
    Comments           []CommentNode `json:"comments" gorm:"-"`
}

func (Post) TableName() string { return "posts" }
