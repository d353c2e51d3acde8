package main

import (
    "context"
    "fmt"
    "math"
    "math/rand"
    "os"
    "sort"
    "strconv"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/campuslink/backend/config"
    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
    "github.com/campuslink/backend/internal/service"
    "github.com/campuslink/backend/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
    if len(vs) == 0 { return 0 }
    xs := append([]time.Duration(nil), vs...)
    sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
    k := int(math.Ceil(p*float64(len(xs)))) - 1
    if k < 0 { k = 0 }
    if k >= len(xs) { k = len(xs) - 1 }
    return xs[k]
}

func envInt(name string, def int) int {
    if s := os.Getenv(name); s != "" {
        if v, err := strconv.Atoi(s); err == nil && v > 0 { return v }
    }
    return def
}

// 信息流合成基准：u0 与 N 个用户互为人脉，每人 POSTS 条帖子，
// 每帖附带评论与点赞，测 BuildFeed 的延迟分布。
func main() {
    cfg := must(config.Load())
    db := must(database.InitDB(cfg))
    ctx := context.Background()

    N := envInt("N", 50)
    POSTS := envInt("POSTS", 5)
    CONC := envInt("CONC", 4)
    ROUNDS := envInt("ROUNDS", 200)

    userRepo := repository.NewUserRepository(db)
    postRepo := repository.NewPostRepository(db)
    commentRepo := repository.NewCommentRepository(db)
    postLikeRepo := repository.NewPostLikeRepository(db)
    commentLikeRepo := repository.NewCommentLikeRepository(db)
    connRepo := repository.NewConnectionRepository(db)

    formatter := service.NewCommentTreeFormatter(userRepo, commentLikeRepo)
    enricher := service.NewPostEnricher(userRepo, postLikeRepo, commentRepo, formatter)
    connSvc := service.NewConnectionService(connRepo, userRepo, nil, 0)
    feedSvc := service.NewFeedService(postRepo, connSvc, enricher)

    // seed
    now := time.Now()
    u0 := model.User{Username: "u0", Password: "p", Email: "u0@example.com", FirstName: "U", LastName: "Zero"}
    _ = db.Where("username = ?", u0.Username).FirstOrCreate(&u0).Error
    for i := 0; i < N; i++ {
        uname := fmt.Sprintf("user_%04d", i)
        u := model.User{Username: uname, Password: "p", Email: uname + "@example.com", FirstName: "User", LastName: fmt.Sprint(i)}
        _ = db.Where("username = ?", uname).FirstOrCreate(&u).Error
        _ = db.Create(&model.Connection{
            ID: uuid.New().String(), FromUsername: uname, ToUsername: "u0",
            Status: model.ConnectionStatusConnected, RequestDate: now, ResponseDate: &now,
        }).Error
        for j := 0; j < POSTS; j++ {
            p := model.Post{
                ID: uuid.New().String(), Username: uname,
                Text:      fmt.Sprintf("post %d of %s", j, uname),
                CreatedAt: now.Add(-time.Duration(rand.Intn(86400)) * time.Second),
            }
            _ = db.Create(&p).Error
            _ = db.Create(&model.Comment{ID: uuid.New().String(), PostID: p.ID, Username: "u0", Text: "nice", CreatedAt: now}).Error
            _ = db.Create(&model.PostLike{ID: uuid.New().String(), PostID: p.ID, Username: "u0", CreatedAt: now}).Error
        }
    }

    // measure
    var mu sync.Mutex
    var lats []time.Duration
    start := time.Now()
    var wg sync.WaitGroup
    for w := 0; w < CONC; w++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            for i := 0; i < ROUNDS; i++ {
                t0 := time.Now()
                if _, err := feedSvc.BuildFeed(ctx, "u0"); err != nil {
                    panic(err)
                }
                d := time.Since(t0)
                mu.Lock()
                lats = append(lats, d)
                mu.Unlock()
            }
        }()
    }
    wg.Wait()
    total := time.Since(start)

    fmt.Printf("feed bench: users=%d posts/user=%d conc=%d rounds=%d\n", N, POSTS, CONC, ROUNDS)
    fmt.Printf("total=%v qps=%.1f\n", total, float64(len(lats))/total.Seconds())
    fmt.Printf("p50=%v p95=%v p99=%v\n", pct(lats, 0.50), pct(lats, 0.95), pct(lats, 0.99))
}
