package model

import "time"

// Message 私信。附件只保存不透明 URL，不做任何媒体处理。
type Message struct {
    ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    FromUsername   string    `json:"fromUsername" gorm:"type:varchar(64);index:idx_msg_from;not null"`
    ToUsername     string    `json:"toUsername" gorm:"type:varchar(64);index:idx_msg_to;not null"`
    Text           string    `json:"text" gorm:"type:text"`
    IsRead         bool      `json:"isRead" gorm:"not null;default:false"`
    AttachmentURL  string    `json:"attachmentUrl,omitempty" gorm:"type:text"`
    AttachmentType string    `json:"attachmentType,omitempty" gorm:"type:varchar(16)"` // image, video, document
    AttachmentName string    `json:"attachmentName,omitempty" gorm:"type:varchar(255)"`
    CreatedAt      time.Time `json:"timestamp" gorm:"index"`
}

func (Message) TableName() string { return "messages" }
