package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchProductParsesFirstProduct(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "products": [
    {
      "product_name": "Банан",
      "nutriments": {
        "energy-kcal_100g": 89,
        "proteins_100g": 1.1,
        "carbohydrates_100g": 22.8,
        "fat_100g": 0.3
      }
    },
    {"product_name": "Банановый чипс", "nutriments": {"energy-kcal_100g": 519}}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	facts, err := c.SearchProduct(context.Background(), "банан")
	if err != nil {
		t.Fatalf("поиск продукта: %v", err)
	}

	if facts.Name != "Банан" || facts.CaloriesPer100g != 89 || facts.ProteinPer100g != 1.1 {
		t.Errorf("неожиданный результат: %+v", facts)
	}
}

func TestSearchProductNotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.SearchProduct(context.Background(), "несуществующее"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, ожидалось ErrProductNotFound", err)
	}
}

func TestSearchProductFallsBackToQueryName(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [{"product_name": "", "nutriments": {"energy-kcal_100g": 50}}]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	facts, err := c.SearchProduct(context.Background(), "кефир")
	if err != nil {
		t.Fatalf("поиск продукта: %v", err)
	}
	if facts.Name != "кефир" {
		t.Errorf("имя = %q, ожидалось имя запроса", facts.Name)
	}
}
