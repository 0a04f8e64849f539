package favorites

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu        sync.RWMutex
	favorites map[int]Favorites // userId -> favorites
	storeErr  error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{favorites: make(map[int]Favorites)}
}

// WithTransaction runs fn against a copy of the stored favorites and keeps the changes only when fn succeeds.
func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.RLock()
	txRepo := &RepositoryStub{favorites: make(map[int]Favorites, len(r.favorites)), storeErr: r.storeErr}
	for userId, favorites := range r.favorites {
		txRepo.favorites[userId] = append(Favorites{}, favorites...)
	}
	r.mu.RUnlock()

	if err := fn(txRepo); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites = txRepo.favorites
	return nil
}

func (r *RepositoryStub) GetFavorites(ctx context.Context, userId int) (Favorites, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(Favorites{}, r.favorites[userId]...), nil
}

func (r *RepositoryStub) StoreFavorites(ctx context.Context, userId int, favorites Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.storeErr != nil {
		return r.storeErr
	}
	r.favorites[userId] = append(Favorites{}, favorites...)
	return nil
}

func (r *RepositoryStub) SetStoreError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeErr = err
}
