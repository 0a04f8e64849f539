package recipe

import (
	"context"
	"sync"
)

// ClientStub is an in-memory Client used by service and handler tests.
type ClientStub struct {
	mu           sync.RWMutex
	recipes      map[int]Recipe
	instructions map[int][]Instructions
	similar      map[int][]SimilarRecipe
	nutrition    map[int]NutritionInfo
	err          error
	Calls        map[string]int
	LastSearch   SearchParams
}

func NewClientStub() *ClientStub {
	return &ClientStub{
		recipes:      make(map[int]Recipe),
		instructions: make(map[int][]Instructions),
		similar:      make(map[int][]SimilarRecipe),
		nutrition:    make(map[int]NutritionInfo),
		Calls:        make(map[string]int),
	}
}

func (c *ClientStub) AddRecipe(recipe Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes[recipe.Id] = recipe
}

func (c *ClientStub) SetInstructions(id int, instructions []Instructions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instructions[id] = instructions
}

func (c *ClientStub) SetSimilar(id int, similar []SimilarRecipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.similar[id] = similar
}

func (c *ClientStub) SetNutrition(id int, nutrition NutritionInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nutrition[id] = nutrition
}

// SetError makes every following call fail with err. Pass nil to restore normal behavior.
func (c *ClientStub) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *ClientStub) CallCount(method string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Calls[method]
}

func (c *ClientStub) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["Search"]++
	c.LastSearch = params
	if c.err != nil {
		return SearchResult{}, c.err
	}
	results := make([]Recipe, 0)
	for _, r := range c.sortedRecipes() {
		if params.Cuisine != "" && !r.HasCuisine(params.Cuisine) {
			continue
		}
		if params.MaxReadyTime > 0 && r.ReadyInMinutes > params.MaxReadyTime {
			continue
		}
		results = append(results, r)
	}
	return SearchResult{Results: results, TotalResults: len(results), Number: len(results)}, nil
}

func (c *ClientStub) GetRecipe(ctx context.Context, id int) (Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["GetRecipe"]++
	if c.err != nil {
		return Recipe{}, c.err
	}
	r, ok := c.recipes[id]
	if !ok {
		return Recipe{}, ErrRecipeNotFound
	}
	return r, nil
}

func (c *ClientStub) GetRandom(ctx context.Context, number int) ([]Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["GetRandom"]++
	if c.err != nil {
		return nil, c.err
	}
	recipes := c.sortedRecipes()
	if number > 0 && len(recipes) > number {
		recipes = recipes[:number]
	}
	return recipes, nil
}

func (c *ClientStub) GetInstructions(ctx context.Context, id int) ([]Instructions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["GetInstructions"]++
	if c.err != nil {
		return nil, c.err
	}
	if _, ok := c.recipes[id]; !ok {
		return nil, ErrRecipeNotFound
	}
	return c.instructions[id], nil
}

func (c *ClientStub) GetSimilar(ctx context.Context, id int) ([]SimilarRecipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["GetSimilar"]++
	if c.err != nil {
		return nil, c.err
	}
	if _, ok := c.recipes[id]; !ok {
		return nil, ErrRecipeNotFound
	}
	return c.similar[id], nil
}

func (c *ClientStub) GetNutrition(ctx context.Context, id int) (NutritionInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["GetNutrition"]++
	if c.err != nil {
		return NutritionInfo{}, c.err
	}
	if _, ok := c.recipes[id]; !ok {
		return NutritionInfo{}, ErrRecipeNotFound
	}
	return c.nutrition[id], nil
}

// sortedRecipes returns stored recipes ordered by id. Caller must hold the lock.
func (c *ClientStub) sortedRecipes() []Recipe {
	recipes := make([]Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		recipes = append(recipes, r)
	}
	for i := 0; i < len(recipes); i++ {
		for j := i + 1; j < len(recipes); j++ {
			if recipes[i].Id > recipes[j].Id {
				recipes[i], recipes[j] = recipes[j], recipes[i]
			}
		}
	}
	return recipes
}
