package get_available_slots

import (
	"fmt"
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// generateDaySlots генерирует сетку часовых слотов студии на дату.
// Слоты идут с часа открытия до часа закрытия (не включая его); в субботу
// студия закрывается раньше, в воскресенье сетка пустая.
func generateDaySlots(date time.Time) []types.TimeString {
	weekday := date.Weekday()
	if weekday == domain.ClosureDay {
		return []types.TimeString{}
	}

	closingHour := domain.ClosingHourFor(weekday)

	slots := make([]types.TimeString, 0, closingHour-domain.OpeningHour)
	for hour := domain.OpeningHour; hour < closingHour; hour++ {
		slots = append(slots, types.TimeString(fmt.Sprintf("%02d:00", hour)))
	}

	return slots
}

// excludeTimes возвращает слоты сетки, не попавшие в объединение занятых
// времен. Сравнение идет по каноническому значению "HH:MM", поэтому
// источник с 12-часовым представлением должен нормализоваться до вызова.
func excludeTimes(grid []types.TimeString, taken ...[]types.TimeString) []types.TimeString {
	takenSet := make(map[types.TimeString]struct{})
	for _, times := range taken {
		for _, t := range times {
			takenSet[t] = struct{}{}
		}
	}

	available := make([]types.TimeString, 0, len(grid))
	for _, slot := range grid {
		if _, ok := takenSet[slot]; !ok {
			available = append(available, slot)
		}
	}

	return available
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
