package service

import (
    "fmt"
    "testing"
    "time"

    "github.com/google/uuid"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
    "github.com/campuslink/backend/pkg/database"
)

// 每个测试独立的内存库；cache=shared 保证连接池内共享同一实例
func setupDB(t *testing.T) *gorm.DB {
    t.Helper()
    dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
    db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, database.AutoMigrate(db))
    return db
}

type testEnv struct {
    db       *gorm.DB
    users    repository.UserRepository
    posts    repository.PostRepository
    comments repository.CommentRepository
    postSvc  PostService
    connSvc  ConnectionService
    feedSvc  FeedService
    userSvc  UserService
    msgSvc   MessageService
}

func newTestEnv(t *testing.T) *testEnv {
    t.Helper()
    db := setupDB(t)
    users := repository.NewUserRepository(db)
    posts := repository.NewPostRepository(db)
    comments := repository.NewCommentRepository(db)
    postLikes := repository.NewPostLikeRepository(db)
    commentLikes := repository.NewCommentLikeRepository(db)
    conns := repository.NewConnectionRepository(db)
    msgs := repository.NewMessageRepository(db)

    formatter := NewCommentTreeFormatter(users, commentLikes)
    enricher := NewPostEnricher(users, postLikes, comments, formatter)
    connSvc := NewConnectionService(conns, users, nil, 0)

    return &testEnv{
        db:       db,
        users:    users,
        posts:    posts,
        comments: comments,
        postSvc:  NewPostService(db, posts, comments, postLikes, commentLikes, users, enricher),
        connSvc:  connSvc,
        feedSvc:  NewFeedService(posts, connSvc, enricher),
        userSvc:  NewUserService(db, users, connSvc),
        msgSvc:   NewMessageService(msgs, users),
    }
}

func (e *testEnv) seedUser(t *testing.T, username string) *model.User {
    t.Helper()
    u := &model.User{
        Username:  username,
        Password:  "hash",
        Email:     username + "@example.com",
        FirstName: "Test",
        LastName:  username,
        Major:     "CS",
    }
    require.NoError(t, e.db.Create(u).Error)
    return u
}

func (e *testEnv) seedPost(t *testing.T, username string, createdAt time.Time) *model.Post {
    t.Helper()
    p := &model.Post{
        ID:        uuid.New().String(),
        Username:  username,
        Text:      "post by " + username,
        CreatedAt: createdAt,
    }
    require.NoError(t, e.db.Create(p).Error)
    return p
}

func (e *testEnv) seedConnected(t *testing.T, from, to string) {
    t.Helper()
    now := time.Now()
    require.NoError(t, e.db.Create(&model.Connection{
        ID:           uuid.New().String(),
        FromUsername: from,
        ToUsername:   to,
        Status:       model.ConnectionStatusConnected,
        RequestDate:  now,
        ResponseDate: &now,
    }).Error)
}
