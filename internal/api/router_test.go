package api_test

import (
    "bytes"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/google/uuid"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/campuslink/backend/config"
    "github.com/campuslink/backend/internal/api"
    "github.com/campuslink/backend/internal/api/handler"
    "github.com/campuslink/backend/internal/repository"
    "github.com/campuslink/backend/internal/service"
    "github.com/campuslink/backend/pkg/database"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
    t.Helper()
    dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
    db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, database.AutoMigrate(db))

    users := repository.NewUserRepository(db)
    posts := repository.NewPostRepository(db)
    comments := repository.NewCommentRepository(db)
    postLikes := repository.NewPostLikeRepository(db)
    commentLikes := repository.NewCommentLikeRepository(db)
    conns := repository.NewConnectionRepository(db)
    msgs := repository.NewMessageRepository(db)

    formatter := service.NewCommentTreeFormatter(users, commentLikes)
    enricher := service.NewPostEnricher(users, postLikes, comments, formatter)
    connSvc := service.NewConnectionService(conns, users, nil, 0)
    h := handler.New(
        service.NewPostService(db, posts, comments, postLikes, commentLikes, users, enricher),
        service.NewFeedService(posts, connSvc, enricher),
        connSvc,
        service.NewUserService(db, users, connSvc),
        service.NewMessageService(msgs, users),
        service.NewOTPService(time.Minute),
    )

    cfg := &config.Config{}
    cfg.Server.Mode = "test"
    cfg.Tracing.ServiceName = "campuslink-test"
    // rate_limit.rps 置零即关闭限流

    srv := httptest.NewServer(api.NewRouter(cfg, h))
    t.Cleanup(srv.Close)
    return srv, db
}

type envelope struct {
    Code    int             `json:"code"`
    Message string          `json:"message"`
    Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body interface{}) (int, envelope) {
    t.Helper()
    var buf bytes.Buffer
    if body != nil {
        require.NoError(t, json.NewEncoder(&buf).Encode(body))
    }
    req, err := http.NewRequest(method, srv.URL+path, &buf)
    require.NoError(t, err)
    req.Header.Set("Content-Type", "application/json")
    resp, err := srv.Client().Do(req)
    require.NoError(t, err)
    defer resp.Body.Close()
    var env envelope
    require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
    return resp.StatusCode, env
}

func registerUser(t *testing.T, srv *httptest.Server, username string) {
    t.Helper()
    code, _ := doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]string{
        "username":  username,
        "password":  "supersecret",
        "email":     username + "@example.com",
        "firstName": "Test",
        "lastName":  username,
    })
    require.Equal(t, http.StatusCreated, code)
}

func TestHealthz(t *testing.T) {
    srv, _ := newTestServer(t)
    resp, err := srv.Client().Get(srv.URL + "/healthz")
    require.NoError(t, err)
    defer resp.Body.Close()
    assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
    srv, _ := newTestServer(t)

    // 用户名带非法字符
    code, _ := doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]string{
        "username": "bad name!", "password": "supersecret",
        "email": "a@example.com", "firstName": "A", "lastName": "B",
    })
    assert.Equal(t, http.StatusBadRequest, code)

    // 密码太短
    code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]string{
        "username": "alice", "password": "short",
        "email": "a@example.com", "firstName": "A", "lastName": "B",
    })
    assert.Equal(t, http.StatusBadRequest, code)

    registerUser(t, srv, "alice")
    code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]string{
        "username": "alice", "password": "supersecret",
        "email": "a@example.com", "firstName": "A", "lastName": "B",
    })
    assert.Equal(t, http.StatusBadRequest, code)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
    srv, _ := newTestServer(t)
    registerUser(t, srv, "alice")
    registerUser(t, srv, "bob")

    code, env := doJSON(t, srv, http.MethodPost, "/api/v1/posts", map[string]interface{}{
        "text": "hello", "username": "alice", "hashtags": []string{"go"},
    })
    require.Equal(t, http.StatusCreated, code)
    var post struct {
        ID string `json:"id"`
    }
    require.NoError(t, json.Unmarshal(env.Data, &post))
    require.NotEmpty(t, post.ID)

    // 点赞开关
    code, env = doJSON(t, srv, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", map[string]interface{}{
        "username": "bob", "isLiked": true,
    })
    require.Equal(t, http.StatusOK, code)
    var likeBody struct {
        LikeCount int64 `json:"likeCount"`
    }
    require.NoError(t, json.Unmarshal(env.Data, &likeBody))
    assert.EqualValues(t, 1, likeBody.LikeCount)

    // isLiked 缺省必须 400（区别于 false）
    code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", map[string]interface{}{
        "username": "bob",
    })
    assert.Equal(t, http.StatusBadRequest, code)

    // 评论 + 回复
    code, env = doJSON(t, srv, http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", map[string]string{
        "text": "nice", "username": "bob",
    })
    require.Equal(t, http.StatusCreated, code)
    var comment struct {
        ID string `json:"id"`
    }
    require.NoError(t, json.Unmarshal(env.Data, &comment))

    code, _ = doJSON(t, srv, http.MethodPost,
        "/api/v1/posts/"+post.ID+"/comments/"+comment.ID+"/replies",
        map[string]string{"text": "thanks", "username": "alice"})
    assert.Equal(t, http.StatusCreated, code)

    // 删除后资源消失
    code, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/posts/"+post.ID, nil)
    require.Equal(t, http.StatusOK, code)
    code, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/posts/"+post.ID, nil)
    assert.Equal(t, http.StatusNotFound, code)
}

func TestFeedOverHTTP(t *testing.T) {
    srv, _ := newTestServer(t)
    registerUser(t, srv, "alice")
    registerUser(t, srv, "bob")

    code, _ := doJSON(t, srv, http.MethodPost, "/api/v1/connections/request", map[string]string{
        "fromUsername": "alice", "toUsername": "bob",
    })
    require.Equal(t, http.StatusCreated, code)
    code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/connections/accept", map[string]string{
        "fromUsername": "alice", "toUsername": "bob",
    })
    require.Equal(t, http.StatusOK, code)

    code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/posts", map[string]interface{}{
        "text": "from bob", "username": "bob",
    })
    require.Equal(t, http.StatusCreated, code)

    code, env := doJSON(t, srv, http.MethodGet, "/api/v1/posts/feed?username=alice", nil)
    require.Equal(t, http.StatusOK, code)
    var feed []struct {
        Text           string `json:"text"`
        AuthorUsername string `json:"authorUsername"`
    }
    require.NoError(t, json.Unmarshal(env.Data, &feed))
    require.Len(t, feed, 1)
    assert.Equal(t, "from bob", feed[0].Text)
    assert.Equal(t, "bob", feed[0].AuthorUsername)

    // 缺 username 参数
    code, _ = doJSON(t, srv, http.MethodGet, "/api/v1/posts/feed", nil)
    assert.Equal(t, http.StatusBadRequest, code)
}

func TestConnectionStatusOverHTTP(t *testing.T) {
    srv, _ := newTestServer(t)
    registerUser(t, srv, "alice")
    registerUser(t, srv, "bob")

    code, _ := doJSON(t, srv, http.MethodPost, "/api/v1/connections/request", map[string]string{
        "fromUsername": "alice", "toUsername": "bob",
    })
    require.Equal(t, http.StatusCreated, code)

    code, env := doJSON(t, srv, http.MethodGet,
        "/api/v1/connections/status?from=bob&to=alice", nil)
    require.Equal(t, http.StatusOK, code)
    var st struct {
        Status string `json:"status"`
    }
    require.NoError(t, json.Unmarshal(env.Data, &st))
    assert.Equal(t, "received_request", st.Status)

    code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/connections/request", map[string]string{
        "fromUsername": "alice", "toUsername": "alice",
    })
    assert.Equal(t, http.StatusBadRequest, code)
}

func TestOTPOverHTTP(t *testing.T) {
    srv, _ := newTestServer(t)

    code, _ := doJSON(t, srv, http.MethodPost, "/api/v1/users/otp", map[string]string{
        "email": "alice@example.com",
    })
    require.Equal(t, http.StatusOK, code)

    // 猜码必然失败；真实码只在 debug 日志里
    code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/users/otp/verify", map[string]string{
        "email": "alice@example.com", "code": "000000",
    })
    assert.Equal(t, http.StatusBadRequest, code)
}

func TestDeleteUserOverHTTP(t *testing.T) {
    srv, db := newTestServer(t)
    registerUser(t, srv, "alice")

    code, _ := doJSON(t, srv, http.MethodPost, "/api/v1/posts", map[string]interface{}{
        "text": "bye", "username": "alice",
    })
    require.Equal(t, http.StatusCreated, code)

    code, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/users/alice", nil)
    require.Equal(t, http.StatusOK, code)

    var cnt int64
    require.NoError(t, db.Table("posts").Where("username = ?", "alice").Count(&cnt).Error)
    assert.Zero(t, cnt)

    code, _ = doJSON(t, srv, http.MethodGet, "/api/v1/users/alice", nil)
    assert.Equal(t, http.StatusNotFound, code)
}
