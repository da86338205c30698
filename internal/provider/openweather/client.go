package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "http://api.openweathermap.org/data/2.5"

// Client - клиент OpenWeather для получения текущей температуры города
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	// DefaultTemperature возвращается, когда погода недоступна
	// (нет ключа, город не найден, сеть не отвечает)
	DefaultTemperature float64
}

type weatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Name string `json:"name"`
}

// CurrentTemperature возвращает текущую температуру города в °C
func (c *Client) CurrentTemperature(ctx context.Context, city string) (float64, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	if c.APIKey == "" {
		return 0, fmt.Errorf("OPENWEATHER_API_KEY не установлен")
	}

	u := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric&lang=ru",
		base, url.QueryEscape(city), url.QueryEscape(c.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания запроса погоды: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка запроса погоды: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения ответа погоды: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("сервис погоды вернул статус %d", resp.StatusCode)
	}

	var parsed weatherResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("ошибка разбора ответа погоды: %w", err)
	}

	return parsed.Main.Temp, nil
}

// TemperatureOrDefault возвращает температуру города, а при любой ошибке -
// температуру по умолчанию. Ядро всегда получает готовое число.
func (c *Client) TemperatureOrDefault(ctx context.Context, city string) float64 {
	temp, err := c.CurrentTemperature(ctx, city)
	if err != nil {
		log.Printf("⚠️ Не удалось получить погоду для %q: %v (используется %.1f°C)",
			city, err, c.DefaultTemperature)
		return c.DefaultTemperature
	}
	return temp
}
