package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
)

type PostRepository interface {
    Create(ctx context.Context, post *model.Post) error
    // FindByID 未命中时返回 gorm.ErrRecordNotFound
    FindByID(ctx context.Context, id string) (*model.Post, error)
    ListByUsername(ctx context.Context, username string) ([]*model.Post, error)
    ListByUsernames(ctx context.Context, usernames []string) ([]*model.Post, error)
    Delete(ctx context.Context, id string) error
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
    return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
    var p model.Post
    if err := r.db.WithContext(ctx).Preload("Hashtags").Where("id = ?", id).First(&p).Error; err != nil {
        return nil, err
    }
    return &p, nil
}

func (r *postRepository) ListByUsername(ctx context.Context, username string) ([]*model.Post, error) {
    var res []*model.Post
    err := r.db.WithContext(ctx).
        Preload("Hashtags").
        Where("username = ?", username).
        Order("created_at DESC").
        Find(&res).Error
    return res, err
}

func (r *postRepository) ListByUsernames(ctx context.Context, usernames []string) ([]*model.Post, error) {
    if len(usernames) == 0 {
        return nil, nil
    }
    var res []*model.Post
    err := r.db.WithContext(ctx).
        Preload("Hashtags").
        Where("username IN ?", usernames).
        Order("created_at DESC").
        Find(&res).Error
    return res, err
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
    return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}
