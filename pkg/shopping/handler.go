package shopping

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/klokku/recipebook/internal/rest"
	"github.com/klokku/recipebook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type ShoppingListItemDTO struct {
	Ingredient string  `json:"ingredient"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
	Checked    bool    `json:"checked"`
}

type ShoppingListDTO struct {
	Source      string                `json:"source"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Items       []ShoppingListItemDTO `json:"items"`
	Total       int                   `json:"total"`
}

type Handler struct {
	service     Service
	csvRenderer Renderer
}

func NewHandler(service Service, csvRenderer Renderer) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer}
}

// GetShoppingList godoc
// @Summary Consolidated shopping list
// @Description Merges ingredients of the planned week or of the favorites. Responds with CSV for
// @Description Accept: text/csv and with a shareable checklist for Accept: text/plain.
// @Tags ShoppingList
// @Produce json,text/csv,text/plain
// @Param source query string false "mealplan (default) or favorites"
// @Param filter query string false "all (default), pending or completed"
// @Param checked query string false "Comma separated ingredient names already bought"
// @Success 200 {object} ShoppingListDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid source or filter"
// @Failure 403 {string} string "User not found"
// @Router /api/shoppinglist [get]
// @Security XUserId
func (h *Handler) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	source := Source(query.Get("source"))
	if source == "" {
		source = SourceMealPlan
	}
	if source != SourceMealPlan && source != SourceFavorites {
		rest.WriteError(w, http.StatusBadRequest, "Invalid source", "Parameter source must be mealplan or favorites")
		return
	}
	filter, err := ParseFilter(query.Get("filter"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	var checked []string
	if value := query.Get("checked"); value != "" {
		checked = strings.Split(value, ",")
	}

	list, err := h.service.GetShoppingList(r.Context(), source, checked, filter)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			http.Error(w, "User not found", http.StatusForbidden)
			return
		}
		log.Errorf("failed to build shopping list: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.Header.Get("Accept") {
	case "text/csv":
		rendered, err := h.csvRenderer.Render(list)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="shopping-list.csv"`)
		if _, err := w.Write([]byte(rendered)); err != nil {
			log.Errorf("failed to write shopping list: %v", err)
		}
	case "text/plain":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(ShareText(list.Items))); err != nil {
			log.Errorf("failed to write shopping list: %v", err)
		}
	default:
		rest.WriteJSON(w, shoppingListToDTO(list))
	}
}

func shoppingListToDTO(list ShoppingList) ShoppingListDTO {
	items := make([]ShoppingListItemDTO, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, ShoppingListItemDTO{
			Ingredient: item.Ingredient,
			Amount:     item.Amount,
			Unit:       item.Unit,
			Checked:    item.Checked,
		})
	}
	return ShoppingListDTO{
		Source:      string(list.Source),
		GeneratedAt: list.GeneratedAt,
		Items:       items,
		Total:       len(items),
	}
}
