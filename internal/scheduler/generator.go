package scheduler

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// GenerateTimeSlots генерирует слоты рабочего дня с шагом SlotDurationMinutes
// Слоты идут подряд без пропусков, начиная с DayStart
// Последний неполный слот отбрасывается: слот, который заканчивался бы позже DayEnd, не создаётся
//
// Пример для 08:00-17:00 по 90 минут: 08:00-09:30, 09:30-11:00, ..., 15:30-17:00 (6 слотов)
func GenerateTimeSlots(date time.Time, hours domain.ClinicHours) []domain.SlotWindow {
	dayStart := hours.DayStart.Minutes()
	dayEnd := hours.DayEnd.Minutes()
	duration := hours.SlotDurationMinutes

	if duration <= 0 || dayStart < 0 || dayEnd <= dayStart {
		return []domain.SlotWindow{}
	}

	day := domain.DateOnly(date)
	windows := make([]domain.SlotWindow, 0, (dayEnd-dayStart)/duration)

	for current := dayStart; current+duration <= dayEnd; current += duration {
		start, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			break
		}
		end, err := types.NewTimeStringFromMinutes(current + duration)
		if err != nil {
			// конец слота ровно в 24:00 не представим как время суток
			break
		}

		windows = append(windows, domain.SlotWindow{
			Date:      day,
			StartTime: start,
			EndTime:   end,
		})
	}

	return windows
}

// IsValidTimeSlot проверяет, что окно совпадает с одним из сгенерированных слотов дня
func IsValidTimeSlot(window domain.SlotWindow, hours domain.ClinicHours) bool {
	for _, generated := range GenerateTimeSlots(window.Date, hours) {
		if generated.StartTime == window.StartTime && generated.EndTime == window.EndTime {
			return true
		}
	}
	return false
}
