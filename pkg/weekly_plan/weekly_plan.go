package weekly_plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/klokku/recipebook/pkg/recipe"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrInvalidDay = errors.New("invalid day of week")
var ErrInvalidMealType = errors.New("invalid meal type")

const DaysInWeek = 7

// Day is one of the seven days of the meal plan week. The plan week always starts on Monday.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay accepts a day name in any letter case, e.g. "monday" or "Monday".
func ParseDay(value string) (Day, error) {
	for i, name := range dayNames {
		if strings.EqualFold(name, strings.TrimSpace(value)) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, value)
}

func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, int(d))
	}
	return []byte(dayNames[d]), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeeklyPlan maps every day of the week to the recipes planned for it, in insertion order.
// The same recipe may appear several times, on one day or across days.
type WeeklyPlan map[Day][]recipe.Recipe

// NewWeeklyPlan returns a plan with all seven days present and empty.
func NewWeeklyPlan() WeeklyPlan {
	plan := make(WeeklyPlan, DaysInWeek)
	for _, day := range Days {
		plan[day] = []recipe.Recipe{}
	}
	return plan
}

func (p *WeeklyPlan) UnmarshalJSON(data []byte) error {
	var decoded map[Day][]recipe.Recipe
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	plan := NewWeeklyPlan()
	for day, meals := range decoded {
		if meals != nil {
			plan[day] = meals
		}
	}
	*p = plan
	return nil
}

func (p WeeklyPlan) Copy() WeeklyPlan {
	copied := NewWeeklyPlan()
	for day, meals := range p {
		if !day.Valid() {
			continue
		}
		copied[day] = append(copied[day], meals...)
	}
	return copied
}

type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyAverage divides every total by the seven days of the week and rounds to whole numbers.
func (n NutritionTotals) DailyAverage() NutritionTotals {
	return NutritionTotals{
		Calories: math.Round(n.Calories / DaysInWeek),
		Protein:  math.Round(n.Protein / DaysInWeek),
		Carbs:    math.Round(n.Carbs / DaysInWeek),
		Fat:      math.Round(n.Fat / DaysInWeek),
	}
}

type Stats struct {
	TotalMeals    int `json:"totalMeals"`
	TotalCookTime int `json:"totalCookTime"`
	// AverageCookTimePerDay always divides by seven, including days with nothing planned.
	AverageCookTimePerDay int `json:"averageCookTimePerDay"`
	CuisineVariety        int `json:"cuisineVariety"`
}

// Planner holds a weekly plan and answers aggregate questions about it.
// It is safe for concurrent use.
type Planner struct {
	mu   sync.RWMutex
	plan WeeklyPlan
}

func NewPlanner(plan WeeklyPlan) *Planner {
	if plan == nil {
		return &Planner{plan: NewWeeklyPlan()}
	}
	return &Planner{plan: plan.Copy()}
}

func (p *Planner) AddMeal(day Day, meal recipe.Recipe) {
	if !day.Valid() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plan[day] = append(p.plan[day], meal)
}

// RemoveMeal removes every occurrence of the recipe from the day and returns how many were removed.
func (p *Planner) RemoveMeal(day Day, recipeId int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	meals := p.plan[day]
	if len(meals) == 0 {
		return 0
	}
	kept := make([]recipe.Recipe, 0, len(meals))
	for _, meal := range meals {
		if meal.Id != recipeId {
			kept = append(kept, meal)
		}
	}
	p.plan[day] = kept
	return len(meals) - len(kept)
}

func (p *Planner) MealsForDay(day Day) []recipe.Recipe {
	p.mu.RLock()
	defer p.mu.RUnlock()
	meals := make([]recipe.Recipe, len(p.plan[day]))
	copy(meals, p.plan[day])
	return meals
}

// MealsForSlot returns the day's recipes tagged with the given meal type, e.g. "Breakfast".
func (p *Planner) MealsForSlot(day Day, mealType string) []recipe.Recipe {
	dishType := cases.Lower(language.English).String(strings.TrimSpace(mealType))
	slot := make([]recipe.Recipe, 0)
	for _, meal := range p.MealsForDay(day) {
		if meal.HasDishType(dishType) {
			slot = append(slot, meal)
		}
	}
	return slot
}

// ClearDay empties the day and returns the number of removed meals.
func (p *Planner) ClearDay(day Day) int {
	if !day.Valid() {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	removed := len(p.plan[day])
	p.plan[day] = []recipe.Recipe{}
	return removed
}

// ClearWeek empties every day and returns the number of removed meals.
func (p *Planner) ClearWeek() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	removed := 0
	for _, day := range Days {
		removed += len(p.plan[day])
	}
	p.plan = NewWeeklyPlan()
	return removed
}

// WeeklyNutrition sums the nutrition of every planned recipe. Values are read up to the first
// non-numeric character, so "12g" counts as 12; missing or unreadable values count as 0.
func (p *Planner) WeeklyNutrition() NutritionTotals {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var totals NutritionTotals
	for _, day := range Days {
		for _, meal := range p.plan[day] {
			if meal.Nutrition == nil {
				continue
			}
			totals.Calories += recipe.ParseNutritionValue(meal.Nutrition.Calories)
			totals.Protein += recipe.ParseNutritionValue(meal.Nutrition.Protein)
			totals.Carbs += recipe.ParseNutritionValue(meal.Nutrition.Carbs)
			totals.Fat += recipe.ParseNutritionValue(meal.Nutrition.Fat)
		}
	}
	return totals
}

func (p *Planner) WeeklyStats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var stats Stats
	cuisines := make(map[string]struct{})
	for _, day := range Days {
		for _, meal := range p.plan[day] {
			stats.TotalMeals++
			stats.TotalCookTime += meal.ReadyInMinutes
			for _, cuisine := range meal.Cuisines {
				cuisines[cuisine] = struct{}{}
			}
		}
	}
	stats.AverageCookTimePerDay = int(math.Round(float64(stats.TotalCookTime) / DaysInWeek))
	stats.CuisineVariety = len(cuisines)
	return stats
}

// Recipes lists every planned recipe, Monday first.
func (p *Planner) Recipes() []recipe.Recipe {
	p.mu.RLock()
	defer p.mu.RUnlock()
	all := make([]recipe.Recipe, 0)
	for _, day := range Days {
		all = append(all, p.plan[day]...)
	}
	return all
}

func (p *Planner) Snapshot() WeeklyPlan {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.plan.Copy()
}

// ParseMealType returns the canonical label of a meal type, e.g. "breakfast" becomes "Breakfast".
func ParseMealType(value string) (string, error) {
	label := cases.Title(language.English).String(strings.TrimSpace(value))
	for _, mealType := range recipe.MealTypes {
		if mealType == label {
			return label, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMealType, value)
}
