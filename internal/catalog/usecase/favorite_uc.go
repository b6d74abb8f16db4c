package usecase

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// FavoriteUsecase keeps the session-local set of favorited listing ids. It is
// never persisted and resets with the process.
type FavoriteUsecase struct {
	logger *zap.Logger

	mu  sync.Mutex
	ids map[string]struct{}
}

func NewFavoriteUsecase(log *zap.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		logger: log,
		ids:    make(map[string]struct{}),
	}
}

// Toggle flips membership for id and reports whether it is now favorited.
func (uc *FavoriteUsecase) Toggle(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.ids[id]; ok {
		delete(uc.ids, id)
		uc.logger.Debug("favorite removed", zap.String("listing_id", id))
		return false
	}
	uc.ids[id] = struct{}{}
	uc.logger.Debug("favorite added", zap.String("listing_id", id))
	return true
}

func (uc *FavoriteUsecase) Contains(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.ids[id]
	return ok
}

// IDs returns the favorited ids, sorted for stable output.
func (uc *FavoriteUsecase) IDs() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]string, 0, len(uc.ids))
	for id := range uc.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
