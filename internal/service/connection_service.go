package service

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    "github.com/google/uuid"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
    "github.com/campuslink/backend/pkg/logger"
)

// ConnectionService 人脉域：请求/接受/拒绝/断开，状态查询与已连接名单解析
type ConnectionService interface {
    Request(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error)
    Accept(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error)
    Reject(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error)
    Disconnect(ctx context.Context, a, b string) error
    // Status 先查 from→to 原样返回；回落到 to→from 时重映射：
    // connected→connected，pending→received_request，其余→not_connected
    Status(ctx context.Context, fromUsername, toUsername string) (string, error)
    // ConnectionsOf 返回所有 status=connected 记录中对侧的用户名
    ConnectionsOf(ctx context.Context, username string) ([]string, error)
    ListFor(ctx context.Context, username string) ([]model.UserSummary, error)
    PendingFor(ctx context.Context, username string) ([]model.UserSummary, error)
    // Invalidate 丢弃指定用户的已连接名单缓存
    Invalidate(ctx context.Context, usernames ...string)
}

type connectionService struct {
    conns repository.ConnectionRepository
    users repository.UserRepository
    cache *redis.Client // 可为 nil，此时全部直查库
    ttl   time.Duration
}

func NewConnectionService(conns repository.ConnectionRepository, users repository.UserRepository, cache *redis.Client, ttl time.Duration) ConnectionService {
    if ttl <= 0 {
        ttl = 5 * time.Minute
    }
    return &connectionService{conns: conns, users: users, cache: cache, ttl: ttl}
}

func connectionsKey(username string) string { return fmt.Sprintf("connections:%s", username) }

func (s *connectionService) Request(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error) {
    if fromUsername == toUsername {
        return nil, ErrSelfConnection
    }
    for _, u := range []string{fromUsername, toUsername} {
        if ok, err := s.users.Exists(ctx, u); err != nil {
            return nil, err
        } else if !ok {
            return nil, ErrUserNotFound
        }
    }

    existing, err := s.conns.FindByPair(ctx, fromUsername, toUsername)
    if err == nil {
        // 被拒绝过的请求可以重新发起，其余原样返回
        if existing.Status == model.ConnectionStatusRejected {
            existing.Status = model.ConnectionStatusPending
            existing.RequestDate = time.Now()
            existing.ResponseDate = nil
            if err := s.conns.Save(ctx, existing); err != nil {
                return nil, err
            }
        }
        return existing, nil
    }
    if !errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, err
    }

    conn := &model.Connection{
        ID:           uuid.New().String(),
        FromUsername: fromUsername,
        ToUsername:   toUsername,
        Status:       model.ConnectionStatusPending,
        RequestDate:  time.Now(),
    }
    if err := s.conns.Create(ctx, conn); err != nil {
        return nil, err
    }
    return conn, nil
}

func (s *connectionService) Accept(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error) {
    conn, err := s.conns.FindByPair(ctx, fromUsername, toUsername)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrConnectionNotFound
        }
        return nil, err
    }
    now := time.Now()
    conn.Status = model.ConnectionStatusConnected
    conn.ResponseDate = &now
    if err := s.conns.Save(ctx, conn); err != nil {
        return nil, err
    }
    s.Invalidate(ctx, fromUsername, toUsername)
    return conn, nil
}

func (s *connectionService) Reject(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error) {
    conn, err := s.conns.FindByPair(ctx, fromUsername, toUsername)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrConnectionNotFound
        }
        return nil, err
    }
    now := time.Now()
    conn.Status = model.ConnectionStatusRejected
    conn.ResponseDate = &now
    if err := s.conns.Save(ctx, conn); err != nil {
        return nil, err
    }
    return conn, nil
}

func (s *connectionService) Disconnect(ctx context.Context, a, b string) error {
    if err := s.conns.DeleteByPair(ctx, a, b); err != nil {
        return err
    }
    s.Invalidate(ctx, a, b)
    return nil
}

func (s *connectionService) Status(ctx context.Context, fromUsername, toUsername string) (string, error) {
    direct, err := s.conns.FindByPair(ctx, fromUsername, toUsername)
    if err == nil {
        return direct.Status, nil
    }
    if !errors.Is(err, gorm.ErrRecordNotFound) {
        return "", err
    }

    reverse, err := s.conns.FindByPair(ctx, toUsername, fromUsername)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return model.ConnectionStatusNotConnected, nil
        }
        return "", err
    }
    switch reverse.Status {
    case model.ConnectionStatusConnected:
        return model.ConnectionStatusConnected, nil
    case model.ConnectionStatusPending:
        return model.ConnectionStatusReceivedRequest, nil
    default:
        return model.ConnectionStatusNotConnected, nil
    }
}

func (s *connectionService) ConnectionsOf(ctx context.Context, username string) ([]string, error) {
    key := connectionsKey(username)
    if s.cache != nil {
        if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
            var out []string
            if uErr := json.Unmarshal(data, &out); uErr == nil {
                return out, nil
            }
        }
    }

    rows, err := s.conns.ListConnectedForUser(ctx, username)
    if err != nil {
        return nil, err
    }
    out := make([]string, 0, len(rows))
    for _, c := range rows {
        if c.FromUsername == username {
            out = append(out, c.ToUsername)
        } else {
            out = append(out, c.FromUsername)
        }
    }

    if s.cache != nil {
        if payload, err := json.Marshal(out); err == nil {
            _ = s.cache.Set(ctx, key, payload, s.ttl).Err()
        }
    }
    return out, nil
}

func (s *connectionService) ListFor(ctx context.Context, username string) ([]model.UserSummary, error) {
    rows, err := s.conns.ListConnectedForUser(ctx, username)
    if err != nil {
        return nil, err
    }
    out := make([]model.UserSummary, 0, len(rows))
    for _, c := range rows {
        other := c.FromUsername
        if c.FromUsername == username {
            other = c.ToUsername
        }
        u, err := s.users.FindByUsername(ctx, other)
        if err != nil {
            // 用户记录缺失的连接不进名单
            if !errors.Is(err, gorm.ErrRecordNotFound) {
                logger.Warn("resolve connection user", zap.String("username", other), zap.Error(err))
            }
            continue
        }
        out = append(out, summaryOf(u))
    }
    return out, nil
}

func (s *connectionService) PendingFor(ctx context.Context, username string) ([]model.UserSummary, error) {
    rows, err := s.conns.ListByToUsernameAndStatus(ctx, username, model.ConnectionStatusPending)
    if err != nil {
        return nil, err
    }
    out := make([]model.UserSummary, 0, len(rows))
    for _, c := range rows {
        u, err := s.users.FindByUsername(ctx, c.FromUsername)
        if err != nil {
            if !errors.Is(err, gorm.ErrRecordNotFound) {
                logger.Warn("resolve pending requester", zap.String("username", c.FromUsername), zap.Error(err))
            }
            continue
        }
        out = append(out, summaryOf(u))
    }
    return out, nil
}

func (s *connectionService) Invalidate(ctx context.Context, usernames ...string) {
    if s.cache == nil {
        return
    }
    keys := make([]string, len(usernames))
    for i, u := range usernames {
        keys[i] = connectionsKey(u)
    }
    if err := s.cache.Del(ctx, keys...).Err(); err != nil {
        logger.Warn("invalidate connections cache", zap.Strings("users", usernames), zap.Error(err))
    }
}

func summaryOf(u *model.User) model.UserSummary {
    return model.UserSummary{
        Username:     u.Username,
        FirstName:    u.FirstName,
        LastName:     u.LastName,
        ProfilePhoto: u.ProfilePhoto,
    }
}
