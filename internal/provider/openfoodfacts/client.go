package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vita-balance/internal/ledger"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// ErrProductNotFound - по запросу не нашлось ни одного продукта
var ErrProductNotFound = errors.New("продукт не найден")

// Client - клиент OpenFoodFacts для поиска пищевой ценности продуктов
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProduct struct {
	ProductName string         `json:"product_name"`
	Nutriments  map[string]any `json:"nutriments"`
}

// SearchProduct ищет продукт по названию и возвращает его пищевую ценность
// на 100 г. Берется первый продукт из выдачи, как самый релевантный.
func (c *Client) SearchProduct(ctx context.Context, name string) (ledger.NutritionFacts, error) {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	u := fmt.Sprintf("%s/cgi/search.pl?action=process&search_terms=%s&json=true&page_size=1",
		base, url.QueryEscape(strings.TrimSpace(name)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ledger.NutritionFacts{}, fmt.Errorf("ошибка создания запроса продукта: %w", err)
	}
	req.Header.Set("User-Agent", "vita-balance/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return ledger.NutritionFacts{}, fmt.Errorf("ошибка запроса продукта: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ledger.NutritionFacts{}, fmt.Errorf("ошибка чтения ответа продукта: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ledger.NutritionFacts{}, fmt.Errorf("сервис продуктов вернул статус %d", resp.StatusCode)
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ledger.NutritionFacts{}, fmt.Errorf("ошибка разбора ответа продукта: %w", err)
	}
	if len(parsed.Products) == 0 {
		return ledger.NutritionFacts{}, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}

	product := parsed.Products[0]
	facts := ledger.NutritionFacts{
		Name:            strings.TrimSpace(product.ProductName),
		CaloriesPer100g: nutrientValue(product.Nutriments, "energy-kcal_100g"),
		ProteinPer100g:  nutrientValue(product.Nutriments, "proteins_100g"),
		CarbsPer100g:    nutrientValue(product.Nutriments, "carbohydrates_100g"),
		FatPer100g:      nutrientValue(product.Nutriments, "fat_100g"),
	}
	if facts.Name == "" {
		facts.Name = name
	}

	return facts, nil
}

// nutrientValue достает числовое значение: OpenFoodFacts отдает
// нутриенты то числом, то строкой
func nutrientValue(nutriments map[string]any, key string) float64 {
	switch v := nutriments[key].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}
