package shopping

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	Render(list ShoppingList) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (c *CsvRendererImpl) Render(list ShoppingList) (string, error) {
	data := make([][]string, 0, len(list.Items)+1)
	data = append(data, []string{"Ingredient", "Amount", "Unit", "Checked"})
	for _, item := range list.Items {
		checked := ""
		if item.Checked {
			checked = "x"
		}
		data = append(data, []string{item.Ingredient, formatAmount(item.Amount), item.Unit, checked})
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("failed to render shopping list as CSV: %v", err)
		return "", err
	}
	return buf.String(), nil
}
