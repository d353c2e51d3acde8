package service

import (
    "context"
    "errors"
    "time"

    "go.uber.org/zap"
    "golang.org/x/crypto/bcrypt"
    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
    "github.com/campuslink/backend/pkg/logger"
)

// RegisterInput 注册参数。身份就是明文 username，本服务不做任何鉴权。
type RegisterInput struct {
    Username     string
    Password     string
    Email        string
    FirstName    string
    LastName     string
    ProfilePhoto string
    Major        string
    Department   string
}

// UserService 用户域：注册、查询与整账号删除
type UserService interface {
    Register(ctx context.Context, in RegisterInput) (*model.User, error)
    Get(ctx context.Context, username string) (*model.User, error)
    // DeleteAccount 单个外层事务内抹掉用户的全部足迹：
    // 逐帖级联删除 → 双向人脉记录 → 收发消息 → 用户本体
    DeleteAccount(ctx context.Context, username string) error
}

type userService struct {
    db    *gorm.DB
    users repository.UserRepository
    conns ConnectionService
}

func NewUserService(db *gorm.DB, users repository.UserRepository, conns ConnectionService) UserService {
    return &userService{db: db, users: users, conns: conns}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
    if ok, err := s.users.Exists(ctx, in.Username); err != nil {
        return nil, err
    } else if ok {
        return nil, ErrUsernameTaken
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
    if err != nil {
        return nil, err
    }
    u := &model.User{
        Username:     in.Username,
        Password:     string(hash),
        Email:        in.Email,
        FirstName:    in.FirstName,
        LastName:     in.LastName,
        ProfilePhoto: in.ProfilePhoto,
        Major:        in.Major,
        Department:   in.Department,
        CreatedAt:    time.Now(),
    }
    if err := s.users.Create(ctx, u); err != nil {
        return nil, err
    }
    return u, nil
}

func (s *userService) Get(ctx context.Context, username string) (*model.User, error) {
    u, err := s.users.FindByUsername(ctx, username)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return u, nil
}

func (s *userService) DeleteAccount(ctx context.Context, username string) error {
    if _, err := s.users.FindByUsername(ctx, username); err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrUserNotFound
        }
        return err
    }

    // 提交后要作废的名单缓存：本人 + 所有已连接的对侧用户
    counterparts, err := s.conns.ConnectionsOf(ctx, username)
    if err != nil {
        return err
    }

    err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        posts, err := repository.NewPostRepository(tx).ListByUsername(ctx, username)
        if err != nil {
            return err
        }
        for _, p := range posts {
            if err := deletePostCascade(ctx, tx, p.ID); err != nil {
                return err
            }
        }
        if err := repository.NewConnectionRepository(tx).DeleteByUser(ctx, username); err != nil {
            return err
        }
        if err := repository.NewMessageRepository(tx).DeleteByUser(ctx, username); err != nil {
            return err
        }
        return repository.NewUserRepository(tx).Delete(ctx, username)
    })
    if err != nil {
        return err
    }

    s.conns.Invalidate(ctx, append(counterparts, username)...)
    logger.Info("user account deleted", zap.String("username", username))
    return nil
}
