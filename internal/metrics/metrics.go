package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Recipe API Metrics
var (
	RecipeApiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipeApiRequests,
			Help: HelpTextRecipeApiRequests,
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	RecipeApiDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRecipeApiDuration,
			Help:    HelpTextRecipeApiDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelEndpoint},
	)

	RecipeCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipeCacheLookups,
			Help: HelpTextRecipeCacheLookups,
		},
		[]string{LabelKind, LabelResult},
	)
)

// Business Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	FavoriteChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFavoriteChanges,
			Help: HelpTextFavoriteChanges,
		},
		[]string{LabelAction},
	)

	MealPlanChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMealPlanChanges,
			Help: HelpTextMealPlanChanges,
		},
		[]string{LabelAction, LabelDay},
	)

	MealsUnscheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMealsUnscheduled,
			Help: HelpTextMealsUnscheduled,
		},
	)
)
