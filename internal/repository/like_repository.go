package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/campuslink/backend/internal/model"
)

// 点赞仓储：复合唯一键 + OnConflict DoNothing，重复点赞在存储层天然幂等。

type PostLikeRepository interface {
    Create(ctx context.Context, postID, username string) error
    Delete(ctx context.Context, postID, username string) error
    Exists(ctx context.Context, postID, username string) (bool, error)
    CountByPostID(ctx context.Context, postID string) (int64, error)
    PostIDsByUsername(ctx context.Context, username string) ([]string, error)
    DeleteByPostID(ctx context.Context, postID string) error
}

type postLikeRepository struct{ db *gorm.DB }

func NewPostLikeRepository(db *gorm.DB) PostLikeRepository { return &postLikeRepository{db: db} }

func (r *postLikeRepository) Create(ctx context.Context, postID, username string) error {
    l := &model.PostLike{ID: uuid.New().String(), PostID: postID, Username: username}
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
}

func (r *postLikeRepository) Delete(ctx context.Context, postID, username string) error {
    return r.db.WithContext(ctx).
        Where("post_id = ? AND username = ?", postID, username).
        Delete(&model.PostLike{}).Error
}

func (r *postLikeRepository) Exists(ctx context.Context, postID, username string) (bool, error) {
    var cnt int64
    if err := r.db.WithContext(ctx).
        Model(&model.PostLike{}).
        Where("post_id = ? AND username = ?", postID, username).
        Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}

func (r *postLikeRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.PostLike{}).
        Where("post_id = ?", postID).
        Count(&cnt).Error
    return cnt, err
}

func (r *postLikeRepository) PostIDsByUsername(ctx context.Context, username string) ([]string, error) {
    var ids []string
    err := r.db.WithContext(ctx).
        Model(&model.PostLike{}).
        Where("username = ?", username).
        Pluck("post_id", &ids).Error
    return ids, err
}

func (r *postLikeRepository) DeleteByPostID(ctx context.Context, postID string) error {
    return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.PostLike{}).Error
}

type CommentLikeRepository interface {
    Create(ctx context.Context, commentID, username string) error
    Delete(ctx context.Context, commentID, username string) error
    Exists(ctx context.Context, commentID, username string) (bool, error)
    CountByCommentID(ctx context.Context, commentID string) (int64, error)
    CommentIDsByUsername(ctx context.Context, username string) ([]string, error)
    DeleteByCommentIDs(ctx context.Context, commentIDs []string) error
}

type commentLikeRepository struct{ db *gorm.DB }

func NewCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
    return &commentLikeRepository{db: db}
}

func (r *commentLikeRepository) Create(ctx context.Context, commentID, username string) error {
    l := &model.CommentLike{ID: uuid.New().String(), CommentID: commentID, Username: username}
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
}

func (r *commentLikeRepository) Delete(ctx context.Context, commentID, username string) error {
    return r.db.WithContext(ctx).
        Where("comment_id = ? AND username = ?", commentID, username).
        Delete(&model.CommentLike{}).Error
}

func (r *commentLikeRepository) Exists(ctx context.Context, commentID, username string) (bool, error) {
    var cnt int64
    if err := r.db.WithContext(ctx).
        Model(&model.CommentLike{}).
        Where("comment_id = ? AND username = ?", commentID, username).
        Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}

func (r *commentLikeRepository) CountByCommentID(ctx context.Context, commentID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.CommentLike{}).
        Where("comment_id = ?", commentID).
        Count(&cnt).Error
    return cnt, err
}

func (r *commentLikeRepository) CommentIDsByUsername(ctx context.Context, username string) ([]string, error) {
    var ids []string
    err := r.db.WithContext(ctx).
        Model(&model.CommentLike{}).
        Where("username = ?", username).
        Pluck("comment_id", &ids).Error
    return ids, err
}

func (r *commentLikeRepository) DeleteByCommentIDs(ctx context.Context, commentIDs []string) error {
    if len(commentIDs) == 0 {
        return nil
    }
    return r.db.WithContext(ctx).
        Where("comment_id IN ?", commentIDs).
        Delete(&model.CommentLike{}).Error
}
