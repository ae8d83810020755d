package docsystem

import (
	"context"
	"log/slog"
	"sync"

	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
)

// TagStatsService holds the tag usage statistics feed and the current
// tag selection. IsSelected is recomputed from the selection set on
// every read; the selection is never persisted client-side as
// authoritative.
type TagStatsService struct {
	gateway remote.TagGateway
	logger  *slog.Logger

	mu       sync.RWMutex
	usages   []models.TagUsage
	selected map[string]bool
}

// NewTagStatsService creates a tag statistics service.
func NewTagStatsService(gateway remote.TagGateway, logger *slog.Logger) *TagStatsService {
	return &TagStatsService{
		gateway:  gateway,
		logger:   logger,
		selected: make(map[string]bool),
	}
}

// Load refreshes the statistics from the server. The selection set is
// kept: it belongs to the client, not the feed.
func (s *TagStatsService) Load(ctx context.Context) error {
	usages, err := s.gateway.Statistics(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.usages = usages
	s.mu.Unlock()

	s.logger.Info("tag statistics loaded", "count", len(usages))
	return nil
}

// Toggle flips a tag's membership in the selection set.
func (s *TagStatsService) Toggle(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected[name] {
		delete(s.selected, name)
	} else {
		s.selected[name] = true
	}
}

// ClearSelection empties the selection set.
func (s *TagStatsService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]bool)
}

// Selected returns the currently selected tag names.
func (s *TagStatsService) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.selected))
	for name := range s.selected {
		names = append(names, name)
	}
	return names
}

// Stats returns the usage records with IsSelected derived from the
// current selection set.
func (s *TagStatsService) Stats() []models.TagStat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make([]models.TagStat, 0, len(s.usages))
	for _, usage := range s.usages {
		stats = append(stats, models.TagStat{
			TagUsage:   usage,
			IsSelected: s.selected[usage.Name],
		})
	}
	return stats
}
