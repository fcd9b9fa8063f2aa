package job

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/service"
	"context"
	log "log/slog"
)

// PopularPostJob 周期性重建热门帖子缓存，避免首个请求承担回源开销
type PopularPostJob struct {
	postSvc service.PostService
}

func NewPopularPostJob(postSvc service.PostService) *PopularPostJob {
	return &PopularPostJob{postSvc: postSvc}
}

func (s *PopularPostJob) Run() {
	ctx := context.Background()

	// 先失效旧缓存，随后的回源会写入最新榜单
	if err := redis.DeleteKey(ctx, consts.PopularPostsKey); err != nil {
		log.Warn("Invalidate popular posts cache failed", "err", err)
	}

	if _, err := s.postSvc.Popular(ctx); err != nil {
		log.Error("Rebuild popular posts cache failed", "err", err)
		return
	}

	log.Info("Popular posts cache rebuilt")
}
