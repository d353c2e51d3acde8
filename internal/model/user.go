package model

import "time"

// User 用户（username 为自然主键，其他实体以字符串引用）
type User struct {
    Username     string `json:"username" gorm:"primaryKey;type:varchar(64)"`
    Password     string `json:"-" gorm:"type:varchar(100);not null"`
    Email        string `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
    FirstName    string `json:"firstName" gorm:"type:varchar(64)"`
    LastName     string `json:"lastName" gorm:"type:varchar(64)"`
    ProfilePhoto string `json:"profilePhoto" gorm:"type:text"`
    Major        string `json:"major" gorm:"type:varchar(128)"`
    Department   string `json:"department" gorm:"type:varchar(128)"`
    CreatedAt    time.Time `json:"createdAt"`
    UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// UserSummary 人脉与待处理请求名单中的用户摘要
type UserSummary struct {
    Username     string `json:"username"`
    FirstName    string `json:"firstName"`
    LastName     string `json:"lastName"`
    ProfilePhoto string `json:"profilePhoto"`
}
