package model

// Hashtag 话题标签，name 唯一，首次引用时惰性创建
type Hashtag struct {
    ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
    Name string `json:"name" gorm:"type:varchar(128);uniqueIndex;not null"`
}

func (Hashtag) TableName() string { return "hashtags" }
