package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/proftafla/exam-service/internal/cache"
	"github.com/proftafla/exam-service/internal/domain"
	"github.com/proftafla/exam-service/internal/events"
	"github.com/proftafla/exam-service/internal/extract"
	apperrors "github.com/proftafla/exam-service/pkg/util/errorutil"
)

// ExamService exposes exam schedules and statistics across departments.
type ExamService struct {
	fetcher    *Fetcher
	extractor  *extract.Extractor
	cache      cache.Gateway
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ExamDependencies bundles collaborators for ExamService.
type ExamDependencies struct {
	Fetcher    *Fetcher
	Extractor  *extract.Extractor
	Cache      cache.Gateway
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewExamService creates the service.
func NewExamService(deps ExamDependencies) *ExamService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{
		fetcher:    deps.Fetcher,
		extractor:  deps.Extractor,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Departments lists the known departments.
func (s *ExamService) Departments() []domain.Department {
	return domain.Departments()
}

// GetTests returns the exam groups for one department.
func (s *ExamService) GetTests(ctx context.Context, slug string) ([]domain.ExamGroup, error) {
	id, ok := s.fetcher.ResolveDepartment(slug)
	if !ok {
		return nil, apperrors.NewNotFound("department", map[string]any{"slug": slug})
	}
	return s.load(ctx, id, slug)
}

// DepartmentStats summarizes a single department.
func (s *ExamService) DepartmentStats(ctx context.Context, slug string) (domain.StatsSummary, error) {
	groups, err := s.GetTests(ctx, slug)
	if err != nil {
		return domain.StatsSummary{}, err
	}
	var acc statsAccumulator
	acc.AddGroups(groups)
	return acc.Summary(), nil
}

// GetStats retrieves every department concurrently and summarizes all exams.
// The first failure cancels the rest and no summary is returned.
func (s *ExamService) GetStats(ctx context.Context) (domain.StatsSummary, error) {
	depts := domain.Departments()
	results := make([][]domain.ExamGroup, len(depts))

	g, gctx := errgroup.WithContext(ctx)
	for i, dept := range depts {
		g.Go(func() error {
			groups, err := s.load(gctx, dept.ID, dept.Slug)
			if err != nil {
				return err
			}
			results[i] = groups
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.StatsSummary{}, err
	}

	var acc statsAccumulator
	for _, groups := range results {
		acc.AddGroups(groups)
	}
	summary := acc.Summary()

	s.logger.Info("computed exam stats",
		zap.Int("departments", len(depts)),
		zap.Int("num_tests", summary.NumTests),
		zap.Int("num_students", summary.NumStudents))
	return summary, nil
}

// ClearCache empties the response cache.
func (s *ExamService) ClearCache(ctx context.Context) (bool, error) {
	cleared, err := s.cache.Flush(ctx)
	if err != nil {
		return false, err
	}
	s.logger.Info("cache cleared", zap.Bool("cleared", cleared))

	if s.dispatcher != nil {
		err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCacheCleared,
			Timestamp: time.Now(),
			Payload:   events.CacheClearedPayload{Cleared: cleared},
		})
		if err != nil {
			s.logger.Warn("event handler failed", zap.String("event", string(events.EventCacheCleared)), zap.Error(err))
		}
	}
	return cleared, nil
}

func (s *ExamService) load(ctx context.Context, id int, slug string) ([]domain.ExamGroup, error) {
	raw, err := s.fetcher.Retrieve(ctx, id, s.fetcher.CacheKey(slug))
	if err != nil {
		return nil, fmt.Errorf("retrieve %s: %w", slug, err)
	}
	groups, err := s.extractor.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", slug, err)
	}
	return groups, nil
}
