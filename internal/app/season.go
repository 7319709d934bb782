package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/pkg/logger"
)

// WeekLineup is one week's optimized lineup.
type WeekLineup struct {
	Week   int                `json:"week"`
	Lineup types.LineupResult `json:"lineup"`
}

// OptimizeWeeks solves the configured lineup for every week in weeks on a
// bounded pool of workers, so a slow solve never holds up the others.
// Results come back in ascending week order with duplicates removed. When
// ctx is cancelled the remaining weeks are skipped and ctx's error returned.
func (s *Service) OptimizeWeeks(ctx context.Context, snap *model.Snapshot, weeks []int, workers int) ([]WeekLineup, error) {
	uniq := make(map[int]struct{}, len(weeks))
	ordered := make([]int, 0, len(weeks))
	for _, w := range weeks {
		if _, ok := uniq[w]; ok {
			continue
		}
		uniq[w] = struct{}{}
		ordered = append(ordered, w)
	}
	sort.Ints(ordered)
	if len(ordered) == 0 {
		return nil, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(ordered))

	jobs := make(chan int)
	out := make([]WeekLineup, len(ordered))
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			log := s.logger.Named(name)
			for idx := range jobs {
				week := ordered[idx]
				log.Debug(ctx, "optimizing week", logger.Int("week", week))
				out[idx] = WeekLineup{Week: week, Lineup: s.OptimizeLineup(ctx, snap, s.DefaultParams(week))}
			}
		}(fmt.Sprintf("worker-%d", i))
	}

	var err error
feed:
	for idx := range ordered {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, fmt.Errorf("optimize weeks: %w", err)
	}
	return out, nil
}
