package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/campuslink/backend/internal/model"
)

func TestRegisterHashesPassword(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()

    u, err := e.userSvc.Register(ctx, RegisterInput{
        Username:  "alice",
        Password:  "s3cret",
        Email:     "alice@example.com",
        FirstName: "Alice",
        LastName:  "Liddell",
        Major:     "CS",
    })
    require.NoError(t, err)
    assert.NotEqual(t, "s3cret", u.Password)
    assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")))

    _, err = e.userSvc.Register(ctx, RegisterInput{Username: "alice", Password: "other"})
    assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetUserMissing(t *testing.T) {
    e := newTestEnv(t)
    _, err := e.userSvc.Get(context.Background(), "ghost")
    assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccountErasesFootprint(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()
    e.seedUser(t, "victim")
    e.seedUser(t, "friend")
    e.seedUser(t, "other")
    e.seedConnected(t, "victim", "friend")
    e.seedConnected(t, "other", "victim")

    p1, err := e.postSvc.CreatePost(ctx, CreatePostInput{Username: "victim", Text: "one", Hashtags: []string{"x"}})
    require.NoError(t, err)
    p2, err := e.postSvc.CreatePost(ctx, CreatePostInput{Username: "victim", Text: "two"})
    require.NoError(t, err)

    c, err := e.postSvc.AddComment(ctx, p1.ID, "friend", "hi")
    require.NoError(t, err)
    _, err = e.postSvc.SetPostLike(ctx, p1.ID, "friend", true)
    require.NoError(t, err)
    _, err = e.postSvc.SetCommentLike(ctx, c.ID, "victim", true)
    require.NoError(t, err)

    for _, pair := range [][2]string{{"victim", "friend"}, {"friend", "victim"}} {
        _, err := e.msgSvc.Send(ctx, SendMessageInput{FromUsername: pair[0], ToUsername: pair[1], Text: "hey"})
        require.NoError(t, err)
    }

    // 旁观者的数据作为对照
    keeper := e.seedPost(t, "friend", time.Now())

    require.NoError(t, e.userSvc.DeleteAccount(ctx, "victim"))

    for table, where := range map[string][]interface{}{
        "users":         {"username = ?", "victim"},
        "posts":         {"username = ?", "victim"},
        "comments":      {"post_id IN ?", []string{p1.ID, p2.ID}},
        "post_likes":    {"post_id IN ?", []string{p1.ID, p2.ID}},
        "comment_likes": {"comment_id = ?", c.ID},
        "connections":   {"from_username = ? OR to_username = ?", "victim", "victim"},
        "messages":      {"from_username = ? OR to_username = ?", "victim", "victim"},
    } {
        var cnt int64
        q := e.db.Table(table)
        if len(where) == 3 {
            q = q.Where(where[0], where[1], where[2])
        } else {
            q = q.Where(where[0], where[1])
        }
        require.NoError(t, q.Count(&cnt).Error)
        assert.Zerof(t, cnt, "table %s should have no rows for deleted user", table)
    }

    var cnt int64
    require.NoError(t, e.db.Model(&model.Post{}).Where("id = ?", keeper.ID).Count(&cnt).Error)
    assert.EqualValues(t, 1, cnt)
}

func TestDeleteAccountMissing(t *testing.T) {
    e := newTestEnv(t)
    err := e.userSvc.DeleteAccount(context.Background(), "ghost")
    assert.ErrorIs(t, err, ErrUserNotFound)
}
