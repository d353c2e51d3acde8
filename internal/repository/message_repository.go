package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
)

type MessageRepository interface {
    Create(ctx context.Context, msg *model.Message) error
    // ListConversation 双向取两人之间的消息，时间升序
    ListConversation(ctx context.Context, a, b string) ([]*model.Message, error)
    // MarkRead 把 from→to 的未读消息全部置为已读
    MarkRead(ctx context.Context, fromUsername, toUsername string) error
    DeleteByUser(ctx context.Context, username string) error
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
    return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) ListConversation(ctx context.Context, a, b string) ([]*model.Message, error) {
    var res []*model.Message
    err := r.db.WithContext(ctx).
        Where("(from_username = ? AND to_username = ?) OR (from_username = ? AND to_username = ?)",
            a, b, b, a).
        Order("created_at ASC").
        Find(&res).Error
    return res, err
}

func (r *messageRepository) MarkRead(ctx context.Context, fromUsername, toUsername string) error {
    return r.db.WithContext(ctx).
        Model(&model.Message{}).
        Where("from_username = ? AND to_username = ? AND is_read = ?", fromUsername, toUsername, false).
        Update("is_read", true).Error
}

func (r *messageRepository) DeleteByUser(ctx context.Context, username string) error {
    return r.db.WithContext(ctx).
        Where("from_username = ? OR to_username = ?", username, username).
        Delete(&model.Message{}).Error
}
