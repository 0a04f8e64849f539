package metrics

const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

const (
	MetricNameRecipeApiRequests  = "recipe_api_requests_total"
	MetricNameRecipeApiDuration  = "recipe_api_request_duration_seconds"
	MetricNameRecipeCacheLookups = "recipe_cache_lookups_total"
)

const (
	MetricNameEventsPublished  = "events_published_total"
	MetricNameFavoriteChanges  = "favorite_changes_total"
	MetricNameMealPlanChanges  = "meal_plan_changes_total"
	MetricNameMealsUnscheduled = "meals_unscheduled_total"
)

const (
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight  = "Current number of HTTP requests being served"
	HelpTextRecipeApiRequests     = "Requests sent to the recipe API by endpoint and status"
	HelpTextRecipeApiDuration     = "Recipe API latency in seconds"
	HelpTextRecipeCacheLookups    = "Recipe cache lookups by kind and result"
	HelpTextEventsPublished       = "Domain events observed on the event bus"
	HelpTextFavoriteChanges       = "Changes applied to favorites by action"
	HelpTextMealPlanChanges       = "Changes applied to weekly meal plans by action and day"
	HelpTextMealsUnscheduled      = "Meals removed from weekly plans"
)

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelEndpoint = "endpoint"
	LabelKind     = "kind"
	LabelResult   = "result"
	LabelType     = "type"
	LabelAction   = "action"
	LabelDay      = "day"
)

var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
