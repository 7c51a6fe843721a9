package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
	"authored-notes/internal/repository/repositorytest"
)

func TestRepository_Contract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Store {
		return NewRepository()
	})
}

func TestRepository_ConcurrentCreateAssignsUniqueIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	const workers = 50
	ids := make(chan int64, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			note, err := repo.Create(ctx, model.NoteCreate{Title: "concurrent"}, 1)
			if err == nil {
				ids <- note.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}
