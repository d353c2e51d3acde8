package service

import (
    "context"
    "sort"

    "github.com/campuslink/backend/internal/model"
    "github.com/campuslink/backend/internal/repository"
)

// FeedService 把用户自己的帖子与已连接用户的帖子归并成一条按时间倒序的信息流
type FeedService interface {
    BuildFeed(ctx context.Context, username string) ([]*model.Post, error)
}

type feedService struct {
    posts    repository.PostRepository
    conns    ConnectionService
    enricher *PostEnricher
}

func NewFeedService(posts repository.PostRepository, conns ConnectionService, enricher *PostEnricher) FeedService {
    return &feedService{posts: posts, conns: conns, enricher: enricher}
}

// BuildFeed 帖子或名单读取失败则整个请求失败；
// 之后的逐帖富化失败只降级对应帖子（见 PostEnricher）。
func (s *feedService) BuildFeed(ctx context.Context, username string) ([]*model.Post, error) {
    own, err := s.posts.ListByUsername(ctx, username)
    if err != nil {
        return nil, err
    }
    connected, err := s.conns.ConnectionsOf(ctx, username)
    if err != nil {
        return nil, err
    }
    connPosts, err := s.posts.ListByUsernames(ctx, connected)
    if err != nil {
        return nil, err
    }

    all := make([]*model.Post, 0, len(own)+len(connPosts))
    all = append(all, own...)
    all = append(all, connPosts...)
    sort.SliceStable(all, func(i, j int) bool {
        return all[i].CreatedAt.After(all[j].CreatedAt)
    })

    s.enricher.Enrich(ctx, all)
    return all, nil
}
