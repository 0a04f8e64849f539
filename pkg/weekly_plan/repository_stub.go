package weekly_plan

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	plans    map[int]WeeklyPlan // userId -> plan
	storeErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		plans: make(map[int]WeeklyPlan),
	}
}

// WithTransaction runs fn against a copy of the stored plans and keeps the changes only when fn succeeds.
func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.RLock()
	txRepo := &RepositoryStub{plans: make(map[int]WeeklyPlan, len(r.plans)), storeErr: r.storeErr}
	for userId, plan := range r.plans {
		txRepo.plans[userId] = plan.Copy()
	}
	r.mu.RUnlock()

	if err := fn(txRepo); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = txRepo.plans
	return nil
}

func (r *RepositoryStub) GetPlan(ctx context.Context, userId int) (WeeklyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[userId]
	if !ok {
		return NewWeeklyPlan(), nil
	}
	return plan.Copy(), nil
}

func (r *RepositoryStub) StorePlan(ctx context.Context, userId int, plan WeeklyPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.storeErr != nil {
		return r.storeErr
	}
	r.plans[userId] = plan.Copy()
	return nil
}

func (r *RepositoryStub) SetStoreError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeErr = err
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = make(map[int]WeeklyPlan)
	r.storeErr = nil
}
