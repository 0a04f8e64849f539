package recipe

const (
	DefaultPageSize     = 12
	DefaultMaxReadyTime = 60
	DefaultRandomCount  = 10
)

var Cuisines = []string{
	"African", "American", "British", "Cajun", "Caribbean", "Chinese", "Eastern European",
	"European", "French", "German", "Greek", "Indian", "Irish", "Italian", "Japanese", "Jewish",
	"Korean", "Latin American", "Mediterranean", "Mexican", "Middle Eastern", "Nordic", "Southern",
	"Spanish", "Thai", "Vietnamese",
}

var Diets = []string{
	"Gluten Free", "Ketogenic", "Vegetarian", "Lacto-Vegetarian", "Ovo-Vegetarian", "Vegan",
	"Pescetarian", "Paleo", "Primal", "Low FODMAP", "Whole30",
}

var Intolerances = []string{
	"Dairy", "Egg", "Gluten", "Grain", "Peanut", "Seafood", "Sesame", "Shellfish", "Soy", "Sulfite",
	"Tree Nut", "Wheat",
}

// MealTypes are the slots a day of the weekly plan is split into. A recipe fits a slot when its
// dish types contain the lower-cased slot name.
var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var SortOptions = []SortOption{
	{Value: "popularity", Label: "Most Popular"},
	{Value: "time", Label: "Quickest"},
	{Value: "random", Label: "Random"},
	{Value: "healthiness", Label: "Healthiest"},
	{Value: "price", Label: "Budget Friendly"},
}

type SearchParams struct {
	Query        string `validate:"max=200"`
	Cuisine      string `validate:"max=100"`
	Diet         string `validate:"max=100"`
	Intolerances string `validate:"max=200"`
	Type         string `validate:"max=100"`
	MaxReadyTime int    `validate:"min=0,max=1440"`
	Sort         string `validate:"omitempty,oneof=popularity time random healthiness price"`
	Number       int    `validate:"min=0,max=100"`
	Offset       int    `validate:"min=0,max=900"`
}

// DefaultSearchParams mirrors the filters a fresh search page starts with.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		MaxReadyTime: DefaultMaxReadyTime,
		Sort:         "popularity",
		Number:       DefaultPageSize,
	}
}

type SearchResult struct {
	Results      []Recipe `json:"results"`
	TotalResults int      `json:"totalResults"`
	Offset       int      `json:"offset"`
	Number       int      `json:"number"`
}

// SimilarRecipe is the reduced shape returned for "you may also like" lists.
type SimilarRecipe struct {
	Id             int    `json:"id"`
	Title          string `json:"title"`
	ImageType      string `json:"imageType"`
	ReadyInMinutes int    `json:"readyInMinutes"`
	Servings       int    `json:"servings"`
	SourceUrl      string `json:"sourceUrl"`
}

type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

type Instructions struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}
