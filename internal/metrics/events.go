package metrics

import (
	"github.com/klokku/recipebook/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// EventMetricsCollector turns favorites and meal plan events into business metrics.
type EventMetricsCollector struct {
	unsubscribe []func()
}

func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes the collector to every event it records.
func (c *EventMetricsCollector) Register(bus *event_bus.EventBus) {
	c.unsubscribe = append(c.unsubscribe,
		event_bus.SubscribeTyped(bus, event_bus.FavoriteAddedType,
			func(e event_bus.EventT[event_bus.FavoriteAdded]) error {
				EventsPublished.WithLabelValues(string(e.Type)).Inc()
				FavoriteChanges.WithLabelValues("added").Inc()
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.FavoriteRemovedType,
			func(e event_bus.EventT[event_bus.FavoriteRemoved]) error {
				EventsPublished.WithLabelValues(string(e.Type)).Inc()
				FavoriteChanges.WithLabelValues("removed").Inc()
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.FavoritesClearedType,
			func(e event_bus.EventT[event_bus.FavoritesCleared]) error {
				EventsPublished.WithLabelValues(string(e.Type)).Inc()
				FavoriteChanges.WithLabelValues("cleared").Inc()
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.MealPlannedType,
			func(e event_bus.EventT[event_bus.MealPlanned]) error {
				EventsPublished.WithLabelValues(string(e.Type)).Inc()
				MealPlanChanges.WithLabelValues("added", e.Data.Day).Inc()
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.MealUnplannedType,
			func(e event_bus.EventT[event_bus.MealUnplanned]) error {
				EventsPublished.WithLabelValues(string(e.Type)).Inc()
				MealPlanChanges.WithLabelValues("removed", e.Data.Day).Inc()
				MealsUnscheduled.Add(float64(e.Data.Removed))
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.MealPlanClearedType,
			func(e event_bus.EventT[event_bus.MealPlanCleared]) error {
				EventsPublished.WithLabelValues(string(e.Type)).Inc()
				day := e.Data.Day
				if day == "" {
					day = "week"
				}
				MealPlanChanges.WithLabelValues("cleared", day).Inc()
				MealsUnscheduled.Add(float64(e.Data.Removed))
				return nil
			}),
	)
	log.Debugf("event metrics collector subscribed to %d event types", len(c.unsubscribe))
}

// Close removes all subscriptions.
func (c *EventMetricsCollector) Close() {
	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil
}
