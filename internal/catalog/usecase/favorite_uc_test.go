package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFavoriteToggle(t *testing.T) {
	uc := NewFavoriteUsecase(zap.NewNop())

	assert.False(t, uc.Contains("l1"))
	assert.True(t, uc.Toggle("l1"), "first toggle adds")
	assert.True(t, uc.Contains("l1"))

	assert.False(t, uc.Toggle("l1"), "second toggle removes")
	assert.False(t, uc.Contains("l1"))
	assert.Empty(t, uc.IDs())
}

func TestFavoriteIDsSorted(t *testing.T) {
	uc := NewFavoriteUsecase(zap.NewNop())

	uc.Toggle("l3")
	uc.Toggle("l1")
	uc.Toggle("l2")

	assert.Equal(t, []string{"l1", "l2", "l3"}, uc.IDs())
}

func TestFavoriteToggleIndependentIDs(t *testing.T) {
	uc := NewFavoriteUsecase(zap.NewNop())

	uc.Toggle("l1")
	uc.Toggle("l2")
	uc.Toggle("l1")

	assert.False(t, uc.Contains("l1"))
	assert.True(t, uc.Contains("l2"))
	assert.Equal(t, []string{"l2"}, uc.IDs())
}
