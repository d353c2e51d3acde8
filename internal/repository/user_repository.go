package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
)

type UserRepository interface {
    Create(ctx context.Context, user *model.User) error
    // FindByUsername 未命中时返回 gorm.ErrRecordNotFound
    FindByUsername(ctx context.Context, username string) (*model.User, error)
    Exists(ctx context.Context, username string) (bool, error)
    Delete(ctx context.Context, username string) error
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
    return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
    var u model.User
    if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
        return nil, err
    }
    return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
    var cnt int64
    if err := r.db.WithContext(ctx).
        Model(&model.User{}).
        Where("username = ?", username).
        Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
    return r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.User{}).Error
}
