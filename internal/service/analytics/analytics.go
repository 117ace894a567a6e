// internal/service/analytics/analytics.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Service counts page visits in redis. This is the only deliberately
// fail-silent path in the codebase: a lost count never affects entitlement
// or stock correctness, so failures are logged and swallowed.
type Service struct {
	client *redis.Client
	logger *zap.Logger
}

func NewService(client *redis.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// CountVisit increments the daily counter for a page.
func (s *Service) CountVisit(ctx context.Context, page string) {
	if s.client == nil {
		return
	}

	key := fmt.Sprintf("visits:%s:%s", page, time.Now().Format("2006-01-02"))
	if err := s.client.Incr(ctx, key).Err(); err != nil {
		s.logger.Warn("visit count failed", zap.String("page", page), zap.Error(err))
	}
}

// Visits returns today's counter for a page; 0 on any failure.
func (s *Service) Visits(ctx context.Context, page string) int64 {
	if s.client == nil {
		return 0
	}

	key := fmt.Sprintf("visits:%s:%s", page, time.Now().Format("2006-01-02"))
	n, err := s.client.Get(ctx, key).Int64()
	if err != nil && err != redis.Nil {
		s.logger.Warn("visit read failed", zap.String("page", page), zap.Error(err))
	}
	return n
}
