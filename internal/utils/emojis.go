package utils

// Вспомогательные функции для получения названий и эмодзи метрик
func GetMetricName(metric string) string {
	switch metric {
	case "water":
		return "💧 Вода"
	case "calories":
		return "🍎 Калории"
	case "burned":
		return "🔥 Сожжено"
	default:
		return metric
	}
}

func GetMetricEmoji(metric string) string {
	switch metric {
	case "water":
		return "💧"
	case "calories":
		return "🍎"
	case "burned":
		return "🔥"
	default:
		return "📌"
	}
}

// GetMetricUnit возвращает единицу измерения метрики
func GetMetricUnit(metric string) string {
	switch metric {
	case "water":
		return "мл"
	case "calories", "burned":
		return "ккал"
	default:
		return ""
	}
}
