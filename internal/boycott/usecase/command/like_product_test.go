package command

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/internal/boycott/repository"
)

func TestLikeProductSuccess(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	likes := repository.NewMemoryLikeRepository()
	seedProducts(t, products, "p1")

	handler := NewLikeProductHandler(likes, products).WithClock(fixedClock())

	count, err := handler.Handle(LikeProductCommand{UserID: "u1", ProductID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	liked, err := likes.Exists("u1", "p1", "2026-W09")
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestLikeProductTwiceSameWeekFails(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	likes := repository.NewMemoryLikeRepository()
	seedProducts(t, products, "p1")

	handler := NewLikeProductHandler(likes, products).WithClock(fixedClock())

	count, err := handler.Handle(LikeProductCommand{UserID: "u1", ProductID: "p1"})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = handler.Handle(LikeProductCommand{UserID: "u1", ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyLiked)

	p1, err := products.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p1.WeeklyLikes, "rejected like must not change the count")
}

func TestLikeProductDifferentProductsSameUser(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	likes := repository.NewMemoryLikeRepository()
	seedProducts(t, products, "p1", "p2")

	handler := NewLikeProductHandler(likes, products).WithClock(fixedClock())

	_, err := handler.Handle(LikeProductCommand{UserID: "u1", ProductID: "p1"})
	require.NoError(t, err)
	_, err = handler.Handle(LikeProductCommand{UserID: "u1", ProductID: "p2"})
	assert.NoError(t, err, "the like key is per product")
}

func TestLikeProductValidation(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	likes := repository.NewMemoryLikeRepository()

	handler := NewLikeProductHandler(likes, products).WithClock(fixedClock())

	_, err := handler.Handle(LikeProductCommand{ProductID: "p1"})
	assert.True(t, domain.IsValidationError(err))

	_, err = handler.Handle(LikeProductCommand{UserID: "u1"})
	assert.True(t, domain.IsValidationError(err))
}

func TestLikeProductConcurrentDistinctUsers(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	likes := repository.NewMemoryLikeRepository()
	seedProducts(t, products, "p1")

	handler := NewLikeProductHandler(likes, products).WithClock(fixedClock())

	const users = 32
	var wg sync.WaitGroup
	errs := make([]error, users)

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(LikeProductCommand{
				UserID:    fmt.Sprintf("user-%d", i),
				ProductID: "p1",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "user %d", i)
	}

	p1, err := products.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, users, p1.WeeklyLikes, "no lost updates under concurrency")
}
