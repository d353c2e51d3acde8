package service

import (
    "context"
    "time"

    "github.com/google/uuid"

    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
)

// SendMessageInput 私信参数，附件字段均为不透明字符串
type SendMessageInput struct {
    FromUsername   string
    ToUsername     string
    Text           string
    AttachmentURL  string
    AttachmentType string
    AttachmentName string
}

// MessageService 私信域：发送、会话读取与已读回执
type MessageService interface {
    Send(ctx context.Context, in SendMessageInput) (*model.Message, error)
    Conversation(ctx context.Context, a, b string) ([]*model.Message, error)
    MarkRead(ctx context.Context, fromUsername, toUsername string) error
}

type messageService struct {
    messages repository.MessageRepository
    users    repository.UserRepository
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
    return &messageService{messages: messages, users: users}
}

func (s *messageService) Send(ctx context.Context, in SendMessageInput) (*model.Message, error) {
    for _, u := range []string{in.FromUsername, in.ToUsername} {
        if ok, err := s.users.Exists(ctx, u); err != nil {
            return nil, err
        } else if !ok {
            return nil, ErrUserNotFound
        }
    }
    m := &model.Message{
        ID:             uuid.New().String(),
        FromUsername:   in.FromUsername,
        ToUsername:     in.ToUsername,
        Text:           in.Text,
        AttachmentURL:  in.AttachmentURL,
        AttachmentType: in.AttachmentType,
        AttachmentName: in.AttachmentName,
        CreatedAt:      time.Now(),
    }
    if err := s.messages.Create(ctx, m); err != nil {
        return nil, err
    }
    return m, nil
}

func (s *messageService) Conversation(ctx context.Context, a, b string) ([]*model.Message, error) {
    return s.messages.ListConversation(ctx, a, b)
}

func (s *messageService) MarkRead(ctx context.Context, fromUsername, toUsername string) error {
    return s.messages.MarkRead(ctx, fromUsername, toUsername)
}
