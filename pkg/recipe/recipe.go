package recipe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Recipe struct {
	Id             int            `json:"id"`
	Title          string         `json:"title"`
	Image          string         `json:"image"`
	Servings       int            `json:"servings"`
	ReadyInMinutes int            `json:"readyInMinutes"`
	Cuisines       []string       `json:"cuisines"`
	DishTypes      []string       `json:"dishTypes"`
	Diets          []string       `json:"diets"`
	Summary        string         `json:"summary,omitempty"`
	Instructions   string         `json:"instructions,omitempty"`
	Ingredients    []Ingredient   `json:"extendedIngredients"`
	Nutrition      *NutritionInfo `json:"nutrition,omitempty"`
}

type Ingredient struct {
	Id   int    `json:"id"`
	Name string `json:"name"` // merge key for shopping lists, compared case-insensitively
	// Amount is expressed in Unit. No unit conversion is ever performed.
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original,omitempty"`
}

// NutritionInfo keeps the values exactly as the recipe API reports them, e.g. "316" or "12g".
type NutritionInfo struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// HasDishType reports whether any of the recipe dish types equals dishType.
func (r Recipe) HasDishType(dishType string) bool {
	for _, t := range r.DishTypes {
		if t == dishType {
			return true
		}
	}
	return false
}

func (r Recipe) HasCuisine(cuisine string) bool {
	for _, c := range r.Cuisines {
		if c == cuisine {
			return true
		}
	}
	return false
}

// Scaled returns a copy of the recipe with ingredient amounts adjusted to the given servings.
// The receiver is left untouched.
func (r Recipe) Scaled(servings int) Recipe {
	scaled := r
	scaled.Ingredients = ScaleIngredients(r.Ingredients, r.Servings, servings)
	scaled.Servings = servings
	return scaled
}

// ScaleIngredients rescales every amount by desiredServings/originalServings, rounded to two
// decimal places. originalServings must be at least 1; validating desiredServings is the
// caller's job.
func ScaleIngredients(ingredients []Ingredient, originalServings int, desiredServings int) []Ingredient {
	ratio := float64(desiredServings) / float64(originalServings)
	scaled := make([]Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		ingredient.Amount = RoundTo2(ingredient.Amount * ratio)
		scaled = append(scaled, ingredient)
	}
	return scaled
}

func RoundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}

var (
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	anyNumber     = regexp.MustCompile(`\d+(\.\d+)?`)
)

// ParseNutritionValue reads the leading numeric portion of values such as "12.5g" or "316 kcal".
// Anything without a leading number (including the empty string) counts as 0.
func ParseNutritionValue(value string) float64 {
	match := leadingNumber.FindString(strings.TrimSpace(value))
	if match == "" {
		return 0
	}
	number, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0
	}
	return number
}

// FormatNutrition rounds the leading number and keeps whatever follows it, "12.6g" becomes "13g".
func FormatNutrition(value string) string {
	match := anyNumber.FindString(value)
	if match == "" {
		return value
	}
	number, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return value
	}
	return strconv.Itoa(int(math.Round(number))) + strings.Replace(value, match, "", 1)
}

// FormatTime renders minutes the way the recipe cards show them: "45 min", "1 hr", "1 hr 15 min".
func FormatTime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	remaining := minutes % 60
	if remaining > 0 {
		return fmt.Sprintf("%d hr %d min", hours, remaining)
	}
	return fmt.Sprintf("%d hr", hours)
}
