package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	SubscribeTyped(bus, MealPlannedType, func(e EventT[MealPlanned]) error {
		calls = append(calls, "first:"+e.Data.Day)
		return nil
	})
	SubscribeTyped(bus, MealPlannedType, func(e EventT[MealPlanned]) error {
		calls = append(calls, "second:"+e.Data.Day)
		return nil
	})

	err := PublishTyped(context.Background(), bus, MealPlannedType, MealPlanned{Day: "Monday", RecipeId: 1})

	require.NoError(t, err)
	assert.Equal(t, []string{"first:Monday", "second:Monday"}, calls)
}

func TestEventBus_PayloadPassedAsAny(t *testing.T) {
	bus := NewEventBus()
	var received []FavoriteAdded
	SubscribeTyped(bus, FavoriteAddedType, func(e EventT[FavoriteAdded]) error {
		received = append(received, e.Data)
		return nil
	})
	var data any = FavoriteAdded{RecipeId: 3, Title: "Soup"}

	require.NoError(t, PublishTyped(context.Background(), bus, FavoriteAddedType, data))

	assert.Equal(t, []FavoriteAdded{{RecipeId: 3, Title: "Soup"}}, received)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	unsubscribe := SubscribeTyped(bus, FavoritesClearedType, func(e EventT[FavoritesCleared]) error {
		count++
		return nil
	})

	require.NoError(t, PublishTyped(context.Background(), bus, FavoritesClearedType, FavoritesCleared{Count: 1}))
	unsubscribe()
	require.NoError(t, PublishTyped(context.Background(), bus, FavoritesClearedType, FavoritesCleared{Count: 1}))

	assert.Equal(t, 1, count)
}

func TestEventBus_Failures(t *testing.T) {
	bus := NewEventBus()
	reached := false
	bus.Subscribe(MealUnplannedType, func(e Event) error { return errors.New("boom") })
	bus.Subscribe(MealUnplannedType, func(e Event) error { panic("bad handler") })
	bus.Subscribe(MealUnplannedType, func(e Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), MealUnplannedType, MealUnplanned{Day: "Friday"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.True(t, reached)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := PublishTyped(ctx, bus, MealPlanClearedType, MealPlanCleared{})

	require.ErrorIs(t, err, context.Canceled)
}

func TestPublishTyped_NilBus(t *testing.T) {
	assert.NoError(t, PublishTyped(context.Background(), nil, MealPlannedType, MealPlanned{}))
}
