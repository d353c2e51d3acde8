package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
)

type ConnectionRepository interface {
    Create(ctx context.Context, conn *model.Connection) error
    Save(ctx context.Context, conn *model.Connection) error
    // FindByPair 精确查 from→to 方向的记录，未命中返回 gorm.ErrRecordNotFound
    FindByPair(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error)
    // ListConnectedForUser 返回用户出现在任一侧且 status=connected 的记录
    ListConnectedForUser(ctx context.Context, username string) ([]*model.Connection, error)
    ListByToUsernameAndStatus(ctx context.Context, toUsername, status string) ([]*model.Connection, error)
    DeleteByPair(ctx context.Context, a, b string) error
    DeleteByUser(ctx context.Context, username string) error
}

type connectionRepository struct{ db *gorm.DB }

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
    return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *model.Connection) error {
    return r.db.WithContext(ctx).Create(conn).Error
}

func (r *connectionRepository) Save(ctx context.Context, conn *model.Connection) error {
    return r.db.WithContext(ctx).Save(conn).Error
}

func (r *connectionRepository) FindByPair(ctx context.Context, fromUsername, toUsername string) (*model.Connection, error) {
    var c model.Connection
    err := r.db.WithContext(ctx).
        Where("from_username = ? AND to_username = ?", fromUsername, toUsername).
        First(&c).Error
    if err != nil {
        return nil, err
    }
    return &c, nil
}

func (r *connectionRepository) ListConnectedForUser(ctx context.Context, username string) ([]*model.Connection, error) {
    var res []*model.Connection
    err := r.db.WithContext(ctx).
        Where("status = ? AND (from_username = ? OR to_username = ?)",
            model.ConnectionStatusConnected, username, username).
        Find(&res).Error
    return res, err
}

func (r *connectionRepository) ListByToUsernameAndStatus(ctx context.Context, toUsername, status string) ([]*model.Connection, error) {
    var res []*model.Connection
    err := r.db.WithContext(ctx).
        Where("to_username = ? AND status = ?", toUsername, status).
        Find(&res).Error
    return res, err
}

// DeleteByPair 双向删除 a/b 之间的关系记录
func (r *connectionRepository) DeleteByPair(ctx context.Context, a, b string) error {
    return r.db.WithContext(ctx).
        Where("(from_username = ? AND to_username = ?) OR (from_username = ? AND to_username = ?)",
            a, b, b, a).
        Delete(&model.Connection{}).Error
}

func (r *connectionRepository) DeleteByUser(ctx context.Context, username string) error {
    return r.db.WithContext(ctx).
        Where("from_username = ? OR to_username = ?", username, username).
        Delete(&model.Connection{}).Error
}
