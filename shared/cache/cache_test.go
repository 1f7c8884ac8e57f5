package cache_test

import (
	"context"
	"errors"
	"testing"

	"lodge/shared/cache"
	"lodge/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRemember_Hit(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mocks.NewMockRedisCache(ctrl)

	c.EXPECT().Get(gomock.Any(), "rooms", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
		*(value.(*[]string)) = []string{"101"}

		return nil
	})

	got, err := cache.Remember(context.Background(), c, "rooms", 60, func(context.Context) ([]string, error) {
		t.Fatal("load must not run on a hit")

		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"101"}, got)
}

func TestRemember_MissLoadsAndSaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mocks.NewMockRedisCache(ctrl)

	saved := make(chan any, 1)

	c.EXPECT().Get(gomock.Any(), "rooms", gomock.Any()).Return(cache.Nil)
	c.EXPECT().Save(gomock.Any(), "rooms", gomock.Any(), 60).DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
		saved <- value

		return nil
	})

	got, err := cache.Remember(context.Background(), c, "rooms", 60, func(context.Context) ([]string, error) {
		return []string{"101", "102"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, got)
	assert.Equal(t, []string{"101", "102"}, <-saved)
}

func TestRemember_LoadFailureSkipsSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mocks.NewMockRedisCache(ctrl)

	c.EXPECT().Get(gomock.Any(), "rooms", gomock.Any()).Return(cache.Nil)

	boom := errors.New("upstream down")

	_, err := cache.Remember(context.Background(), c, "rooms", 60, func(context.Context) ([]string, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}
