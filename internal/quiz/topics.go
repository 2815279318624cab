package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
)

// Resolver maps (book, topic name) pairs to stable topic ids, creating the
// topic the first time a name is seen. Resolutions are cached, so one
// resolver instance spans exactly one ingestion; names are resolved one at
// a time, never in parallel, which keeps the cache consistent without
// locking.
type Resolver struct {
	store Store
	log   *logger.Logger
	cache map[string]string
}

func NewResolver(store Store, log *logger.Logger) *Resolver {
	return &Resolver{
		store: store,
		log:   log,
		cache: map[string]string{},
	}
}

// Resolve returns the topic id for (bookID, name), idempotently. A lost
// creation race is treated as success: the store's insert-if-absent
// re-reads the winning row instead of surfacing a duplicate-key error.
func (r *Resolver) Resolve(ctx context.Context, bookID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = SentinelTopic
	}
	key := bookID + "\x00" + name
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	t, err := r.store.GetTopicByName(ctx, bookID, name)
	if err == nil {
		r.cache[key] = t.ID
		return t.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", apierr.Upstream("TOPIC_RESOLUTION_ERROR", err)
	}

	created, err := r.store.InsertTopic(ctx, Topic{
		ID:     uuid.NewString(),
		BookID: bookID,
		Name:   name,
	})
	if err != nil {
		return "", apierr.Upstream("TOPIC_RESOLUTION_ERROR", err)
	}
	r.log.Info("topic resolved", "book_id", bookID, "name", name, "topic_id", created.ID)
	r.cache[key] = created.ID
	return created.ID, nil
}
