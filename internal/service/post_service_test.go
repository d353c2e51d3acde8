package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/campuslink/backend/internal/model"
)

func TestCreatePostLazilyCreatesHashtags(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()
    e.seedUser(t, "alice")

    p1, err := e.postSvc.CreatePost(ctx, CreatePostInput{
        Username: "alice",
        Text:     "first",
        Hashtags: []string{"golang", "campus"},
    })
    require.NoError(t, err)
    require.Len(t, p1.Hashtags, 2)

    // 同名标签复用，不重复建行
    _, err = e.postSvc.CreatePost(ctx, CreatePostInput{
        Username: "alice",
        Text:     "second",
        Hashtags: []string{"golang"},
    })
    require.NoError(t, err)

    var tagCount int64
    require.NoError(t, e.db.Model(&model.Hashtag{}).Count(&tagCount).Error)
    assert.EqualValues(t, 2, tagCount)
}

func TestCreatePostRequiresExistingAuthor(t *testing.T) {
    e := newTestEnv(t)
    _, err := e.postSvc.CreatePost(context.Background(), CreatePostInput{Username: "ghost", Text: "hi"})
    assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetPostLikeIdempotent(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()
    e.seedUser(t, "alice")
    e.seedUser(t, "bob")
    p := e.seedPost(t, "alice", time.Now())

    count, err := e.postSvc.SetPostLike(ctx, p.ID, "bob", true)
    require.NoError(t, err)
    assert.EqualValues(t, 1, count)

    // 重复点赞不产生第二行
    count, err = e.postSvc.SetPostLike(ctx, p.ID, "bob", true)
    require.NoError(t, err)
    assert.EqualValues(t, 1, count)

    count, err = e.postSvc.SetPostLike(ctx, p.ID, "bob", false)
    require.NoError(t, err)
    assert.EqualValues(t, 0, count)

    count, err = e.postSvc.SetPostLike(ctx, p.ID, "bob", false)
    require.NoError(t, err)
    assert.EqualValues(t, 0, count)
}

func TestSetPostLikeCountsDistinctUsers(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()
    e.seedUser(t, "alice")
    e.seedUser(t, "bob")
    e.seedUser(t, "carol")
    p := e.seedPost(t, "alice", time.Now())

    _, err := e.postSvc.SetPostLike(ctx, p.ID, "bob", true)
    require.NoError(t, err)
    count, err := e.postSvc.SetPostLike(ctx, p.ID, "carol", true)
    require.NoError(t, err)
    assert.EqualValues(t, 2, count)

    var rows int64
    require.NoError(t, e.db.Model(&model.PostLike{}).Where("post_id = ?", p.ID).Count(&rows).Error)
    assert.EqualValues(t, 2, rows)
}

func TestSetPostLikeMissingPost(t *testing.T) {
    e := newTestEnv(t)
    _, err := e.postSvc.SetPostLike(context.Background(), "no-such-post", "bob", true)
    assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddReplyRejectsForeignParent(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()
    e.seedUser(t, "alice")
    p1 := e.seedPost(t, "alice", time.Now())
    p2 := e.seedPost(t, "alice", time.Now())

    c, err := e.postSvc.AddComment(ctx, p1.ID, "alice", "top")
    require.NoError(t, err)

    // 父评论属于另一个帖子
    _, err = e.postSvc.AddReply(ctx, p2.ID, c.ID, "alice", "reply")
    assert.ErrorIs(t, err, ErrCommentNotFound)

    _, err = e.postSvc.AddReply(ctx, p1.ID, "no-such-comment", "alice", "reply")
    assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeletePostCascades(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()
    e.seedUser(t, "alice")
    e.seedUser(t, "bob")

    p, err := e.postSvc.CreatePost(ctx, CreatePostInput{Username: "alice", Text: "hi", Hashtags: []string{"bye"}})
    require.NoError(t, err)
    other := e.seedPost(t, "bob", time.Now())

    top, err := e.postSvc.AddComment(ctx, p.ID, "bob", "top")
    require.NoError(t, err)
    reply, err := e.postSvc.AddReply(ctx, p.ID, top.ID, "alice", "reply")
    require.NoError(t, err)

    _, err = e.postSvc.SetPostLike(ctx, p.ID, "bob", true)
    require.NoError(t, err)
    _, err = e.postSvc.SetCommentLike(ctx, top.ID, "alice", true)
    require.NoError(t, err)
    _, err = e.postSvc.SetCommentLike(ctx, reply.ID, "bob", true)
    require.NoError(t, err)

    require.NoError(t, e.postSvc.DeletePost(ctx, p.ID))

    // 帖子、评论、两类点赞、标签关联全部清空，无孤儿
    for table, where := range map[string][]interface{}{
        "posts":         {"id = ?", p.ID},
        "comments":      {"post_id = ?", p.ID},
        "post_likes":    {"post_id = ?", p.ID},
        "comment_likes": {"comment_id IN ?", []string{top.ID, reply.ID}},
        "post_hashtags": {"post_id = ?", p.ID},
    } {
        var cnt int64
        require.NoError(t, e.db.Table(table).Where(where[0], where[1:]...).Count(&cnt).Error)
        assert.Zerof(t, cnt, "table %s should have no rows for deleted post", table)
    }

    // 无关帖子不受影响
    var cnt int64
    require.NoError(t, e.db.Model(&model.Post{}).Where("id = ?", other.ID).Count(&cnt).Error)
    assert.EqualValues(t, 1, cnt)
}

func TestDeletePostMissing(t *testing.T) {
    e := newTestEnv(t)
    err := e.postSvc.DeletePost(context.Background(), "no-such-post")
    assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikedIDsByUser(t *testing.T) {
    e := newTestEnv(t)
    ctx := context.Background()
    e.seedUser(t, "alice")
    e.seedUser(t, "bob")
    p1 := e.seedPost(t, "alice", time.Now())
    p2 := e.seedPost(t, "alice", time.Now())

    _, err := e.postSvc.SetPostLike(ctx, p1.ID, "bob", true)
    require.NoError(t, err)
    _, err = e.postSvc.SetPostLike(ctx, p2.ID, "bob", true)
    require.NoError(t, err)

    ids, err := e.postSvc.LikedPostIDs(ctx, "bob")
    require.NoError(t, err)
    assert.ElementsMatch(t, []string{p1.ID, p2.ID}, ids)

    c, err := e.postSvc.AddComment(ctx, p1.ID, "alice", "hello")
    require.NoError(t, err)
    _, err = e.postSvc.SetCommentLike(ctx, c.ID, "bob", true)
    require.NoError(t, err)

    cids, err := e.postSvc.LikedCommentIDs(ctx, "bob")
    require.NoError(t, err)
    assert.Equal(t, []string{c.ID}, cids)
}
