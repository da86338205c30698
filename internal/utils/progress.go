package utils

import (
	"fmt"
	"strings"
)

// ProgressBar рисует текстовый прогресс-бар вида [████░░░░] 50%
func ProgressBar(current, goal float64, width int) string {
	if goal <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	progress := current / goal
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	filled := int(float64(width) * progress)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	return fmt.Sprintf("[%s] %d%%", bar, int(progress*100))
}
