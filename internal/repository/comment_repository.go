package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
)

type CommentRepository interface {
    Create(ctx context.Context, comment *model.Comment) error
    // FindByID 未命中时返回 gorm.ErrRecordNotFound
    FindByID(ctx context.Context, id string) (*model.Comment, error)
    // ListByPostID 按创建时间升序返回帖子的全部评论（含回复）
    ListByPostID(ctx context.Context, postID string) ([]*model.Comment, error)
    IDsByPostID(ctx context.Context, postID string) ([]string, error)
    DeleteByPostID(ctx context.Context, postID string) error
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
    return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
    var c model.Comment
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
        return nil, err
    }
    return &c, nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID string) ([]*model.Comment, error) {
    var res []*model.Comment
    err := r.db.WithContext(ctx).
        Where("post_id = ?", postID).
        Order("created_at ASC").
        Find(&res).Error
    return res, err
}

func (r *commentRepository) IDsByPostID(ctx context.Context, postID string) ([]string, error) {
    var ids []string
    err := r.db.WithContext(ctx).
        Model(&model.Comment{}).
        Where("post_id = ?", postID).
        Pluck("id", &ids).Error
    return ids, err
}

func (r *commentRepository) DeleteByPostID(ctx context.Context, postID string) error {
    return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.Comment{}).Error
}
