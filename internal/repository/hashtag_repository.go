package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
)

type HashtagRepository interface {
    // FindOrCreate 惰性建标签：首个引用某名字的帖子触发创建
    FindOrCreate(ctx context.Context, name string) (*model.Hashtag, error)
}

type hashtagRepository struct{ db *gorm.DB }

func NewHashtagRepository(db *gorm.DB) HashtagRepository { return &hashtagRepository{db: db} }

func (r *hashtagRepository) FindOrCreate(ctx context.Context, name string) (*model.Hashtag, error) {
    var tag model.Hashtag
    err := r.db.WithContext(ctx).
        Where("name = ?", name).
        Attrs(model.Hashtag{ID: uuid.New().String()}).
        FirstOrCreate(&tag, model.Hashtag{Name: name}).Error
    if err != nil {
        return nil, err
    }
    return &tag, nil
}
