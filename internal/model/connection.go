package model

import "time"

// Connection 人脉关系：一条有向记录表示一段无向社交关系，
// 语义由 status 及查询方位置共同决定。
type Connection struct {
    ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
    FromUsername string     `json:"fromUsername" gorm:"type:varchar(64);index:idx_conn_from;index:idx_conn_pair,unique;not null"`
    ToUsername   string     `json:"toUsername" gorm:"type:varchar(64);index:idx_conn_to;index:idx_conn_pair,unique;not null"`
    Status       string     `json:"status" gorm:"type:varchar(16);index;not null"`
    RequestDate  time.Time  `json:"requestDate"`
    ResponseDate *time.Time `json:"responseDate,omitempty"`
}

func (Connection) TableName() string { return "connections" }

// 落库状态
const (
    ConnectionStatusPending   = "pending"
    ConnectionStatusConnected = "connected"
    ConnectionStatusRejected  = "rejected"
)

// 仅在查询视角下派生的状态，不落库
const (
    ConnectionStatusReceivedRequest = "received_request"
    ConnectionStatusNotConnected    = "not_connected"
)
