package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrentTemperatureParsesResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Москва" {
			t.Errorf("город в запросе = %q, ожидалось Москва", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, ожидалось metric", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main": {"temp": 27.3, "feels_like": 29.0, "humidity": 40}, "name": "Moscow"}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "key", BaseURL: ts.URL, HTTPClient: ts.Client()}
	temp, err := c.CurrentTemperature(context.Background(), "Москва")
	if err != nil {
		t.Fatalf("запрос температуры: %v", err)
	}
	if temp != 27.3 {
		t.Errorf("температура = %v, ожидалось 27.3", temp)
	}
}

func TestCurrentTemperatureErrorStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "city not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	c := &Client{APIKey: "key", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.CurrentTemperature(context.Background(), "Нигде"); err == nil {
		t.Fatal("ожидалась ошибка при статусе 404")
	}
}

func TestTemperatureOrDefaultFallsBack(t *testing.T) {
	t.Parallel()

	// Нет ключа API - клиент обязан вернуть температуру по умолчанию
	c := &Client{DefaultTemperature: 20}
	if temp := c.TemperatureOrDefault(context.Background(), "Москва"); temp != 20 {
		t.Errorf("температура = %v, ожидалось 20 (fallback)", temp)
	}
}
