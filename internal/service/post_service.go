package service

import (
    "context"
    "errors"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
)

// CreatePostInput 发帖参数
type CreatePostInput struct {
    Username  string
    Text      string
    Hashtags  []string
    ImageURLs []string
    VideoURLs []string
}

// PostService 帖子域：发帖、评论/回复、点赞开关与级联删除
type PostService interface {
    CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error)
    PostsByUsername(ctx context.Context, username string) ([]*model.Post, error)
    SetPostLike(ctx context.Context, postID, username string, liked bool) (int64, error)
    LikedPostIDs(ctx context.Context, username string) ([]string, error)
    AddComment(ctx context.Context, postID, username, text string) (*model.Comment, error)
    CommentsByPost(ctx context.Context, postID string) ([]*model.Comment, error)
    AddReply(ctx context.Context, postID, commentID, username, text string) (*model.Comment, error)
    SetCommentLike(ctx context.Context, commentID, username string, liked bool) (int64, error)
    LikedCommentIDs(ctx context.Context, username string) ([]string, error)
    DeletePost(ctx context.Context, postID string) error
}

type postService struct {
    db           *gorm.DB
    posts        repository.PostRepository
    comments     repository.CommentRepository
    postLikes    repository.PostLikeRepository
    commentLikes repository.CommentLikeRepository
    users        repository.UserRepository
    enricher     *PostEnricher
}

func NewPostService(
    db *gorm.DB,
    posts repository.PostRepository,
    comments repository.CommentRepository,
    postLikes repository.PostLikeRepository,
    commentLikes repository.CommentLikeRepository,
    users repository.UserRepository,
    enricher *PostEnricher,
) PostService {
    return &postService{
        db:           db,
        posts:        posts,
        comments:     comments,
        postLikes:    postLikes,
        commentLikes: commentLikes,
        users:        users,
        enricher:     enricher,
    }
}

// CreatePost 事务内惰性建标签并落帖子，作者必须已存在
func (s *postService) CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error) {
    if ok, err := s.users.Exists(ctx, in.Username); err != nil {
        return nil, err
    } else if !ok {
        return nil, ErrUserNotFound
    }

    post := &model.Post{
        ID:        uuid.New().String(),
        Username:  in.Username,
        Text:      in.Text,
        ImageURLs: in.ImageURLs,
        VideoURLs: in.VideoURLs,
        CreatedAt: time.Now(),
    }
    err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        tags := repository.NewHashtagRepository(tx)
        for _, name := range in.Hashtags {
            tag, err := tags.FindOrCreate(ctx, name)
            if err != nil {
                return err
            }
            post.Hashtags = append(post.Hashtags, *tag)
        }
        return tx.Create(post).Error
    })
    if err != nil {
        return nil, err
    }
    return post, nil
}

// PostsByUsername 按时间倒序返回某用户的帖子并完成全部富化
func (s *postService) PostsByUsername(ctx context.Context, username string) ([]*model.Post, error) {
    posts, err := s.posts.ListByUsername(ctx, username)
    if err != nil {
        return nil, err
    }
    s.enricher.Enrich(ctx, posts)
    return posts, nil
}

// SetPostLike 幂等点赞开关，返回操作后重新统计的点赞数
func (s *postService) SetPostLike(ctx context.Context, postID, username string, liked bool) (int64, error) {
    if _, err := s.posts.FindByID(ctx, postID); err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return 0, ErrPostNotFound
        }
        return 0, err
    }

    exists, err := s.postLikes.Exists(ctx, postID, username)
    if err != nil {
        return 0, err
    }
    if liked && !exists {
        if err := s.postLikes.Create(ctx, postID, username); err != nil {
            return 0, err
        }
    } else if !liked && exists {
        if err := s.postLikes.Delete(ctx, postID, username); err != nil {
            return 0, err
        }
    }
    return s.postLikes.CountByPostID(ctx, postID)
}

func (s *postService) LikedPostIDs(ctx context.Context, username string) ([]string, error) {
    return s.postLikes.PostIDsByUsername(ctx, username)
}

func (s *postService) AddComment(ctx context.Context, postID, username, text string) (*model.Comment, error) {
    if _, err := s.posts.FindByID(ctx, postID); err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrPostNotFound
        }
        return nil, err
    }
    c := &model.Comment{
        ID:        uuid.New().String(),
        PostID:    postID,
        Username:  username,
        Text:      text,
        CreatedAt: time.Now(),
    }
    if err := s.comments.Create(ctx, c); err != nil {
        return nil, err
    }
    return c, nil
}

func (s *postService) CommentsByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
    return s.comments.ListByPostID(ctx, postID)
}

// AddReply 父评论必须属于同一帖子
func (s *postService) AddReply(ctx context.Context, postID, commentID, username, text string) (*model.Comment, error) {
    parent, err := s.comments.FindByID(ctx, commentID)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrCommentNotFound
        }
        return nil, err
    }
    if parent.PostID != postID {
        return nil, ErrCommentNotFound
    }
    reply := &model.Comment{
        ID:        uuid.New().String(),
        PostID:    postID,
        ParentID:  &commentID,
        Username:  username,
        Text:      text,
        CreatedAt: time.Now(),
    }
    if err := s.comments.Create(ctx, reply); err != nil {
        return nil, err
    }
    return reply, nil
}

func (s *postService) SetCommentLike(ctx context.Context, commentID, username string, liked bool) (int64, error) {
    if _, err := s.comments.FindByID(ctx, commentID); err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return 0, ErrCommentNotFound
        }
        return 0, err
    }

    exists, err := s.commentLikes.Exists(ctx, commentID, username)
    if err != nil {
        return 0, err
    }
    if liked && !exists {
        if err := s.commentLikes.Create(ctx, commentID, username); err != nil {
            return 0, err
        }
    } else if !liked && exists {
        if err := s.commentLikes.Delete(ctx, commentID, username); err != nil {
            return 0, err
        }
    }
    return s.commentLikes.CountByCommentID(ctx, commentID)
}

func (s *postService) LikedCommentIDs(ctx context.Context, username string) ([]string, error) {
    return s.commentLikes.CommentIDsByUsername(ctx, username)
}

// DeletePost 单事务级联删除：评论点赞 → 帖子点赞 → 评论 → 标签关联 → 帖子。
// 点赞必须先于其宿主删除，中途任何失败整体回滚。
func (s *postService) DeletePost(ctx context.Context, postID string) error {
    if _, err := s.posts.FindByID(ctx, postID); err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrPostNotFound
        }
        return err
    }
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        return deletePostCascade(ctx, tx, postID)
    })
}

// deletePostCascade 在调用方给定的事务内执行一个帖子的完整级联删除
func deletePostCascade(ctx context.Context, tx *gorm.DB, postID string) error {
    comments := repository.NewCommentRepository(tx)
    commentIDs, err := comments.IDsByPostID(ctx, postID)
    if err != nil {
        return err
    }
    if err := repository.NewCommentLikeRepository(tx).DeleteByCommentIDs(ctx, commentIDs); err != nil {
        return err
    }
    if err := repository.NewPostLikeRepository(tx).DeleteByPostID(ctx, postID); err != nil {
        return err
    }
    if err := comments.DeleteByPostID(ctx, postID); err != nil {
        return err
    }
    if err := tx.Exec("DELETE FROM post_hashtags WHERE post_id = ?", postID).Error; err != nil {
        return err
    }
    return repository.NewPostRepository(tx).Delete(ctx, postID)
}
