package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/recipebook/internal/config"
	"github.com/klokku/recipebook/internal/event_bus"
	"github.com/klokku/recipebook/internal/metrics"
	"github.com/klokku/recipebook/internal/utils"
	"github.com/klokku/recipebook/pkg/favorites"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/klokku/recipebook/pkg/shopping"
	"github.com/klokku/recipebook/pkg/user"
	"github.com/klokku/recipebook/pkg/weekly_plan"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus         *event_bus.EventBus
	MetricsCollector *metrics.EventMetricsCollector

	UserService user.Service
	UserHandler *user.Handler

	RecipeClient  recipe.Client
	RecipeService *recipe.ServiceImpl
	RecipeHandler *recipe.Handler

	WeeklyPlanRepo    weekly_plan.Repository
	WeeklyPlanService *weekly_plan.ServiceImpl
	WeeklyPlanHandler *weekly_plan.Handler

	FavoritesRepo    favorites.Repository
	FavoritesService *favorites.ServiceImpl
	FavoritesHandler *favorites.Handler

	ShoppingService     *shopping.ServiceImpl
	ShoppingCsvRenderer *shopping.CsvRendererImpl
	ShoppingHandler     *shopping.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.MetricsCollector = metrics.NewEventMetricsCollector()
	deps.MetricsCollector.Register(deps.EventBus)

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.RecipeClient = recipe.NewClient(cfg.Spoonacular.BaseUrl, cfg.Spoonacular.ApiKey, cfg.Spoonacular.Timeout).
		WithPageSize(cfg.Spoonacular.PageSize)
	deps.RecipeService = recipe.NewService(deps.RecipeClient, cfg.Cache.Size, cfg.Cache.TTL)
	deps.RecipeHandler = recipe.NewHandler(deps.RecipeService)

	deps.WeeklyPlanRepo = weekly_plan.NewRepo(db)
	deps.WeeklyPlanService = weekly_plan.NewService(deps.WeeklyPlanRepo, deps.RecipeService, deps.EventBus)
	deps.WeeklyPlanHandler = weekly_plan.NewHandler(deps.WeeklyPlanService)

	deps.FavoritesRepo = favorites.NewRepo(db)
	deps.FavoritesService = favorites.NewService(deps.FavoritesRepo, deps.RecipeService, deps.EventBus)
	deps.FavoritesHandler = favorites.NewHandler(deps.FavoritesService)

	deps.Clock = utils.SystemClock{}
	deps.ShoppingService = shopping.NewService(deps.WeeklyPlanService, deps.FavoritesService, deps.Clock)
	deps.ShoppingCsvRenderer = shopping.NewCsvRenderer()
	deps.ShoppingHandler = shopping.NewHandler(deps.ShoppingService, deps.ShoppingCsvRenderer)

	return deps
}
