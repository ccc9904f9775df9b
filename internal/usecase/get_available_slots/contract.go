package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/providerdirectory"
)

// Coordinator координатор слотов
type Coordinator interface {
	// ListSlots возвращает слоты врача на дату, создавая недостающие по шаблону
	ListSlots(ctx context.Context, providerID int64, date time.Time) ([]*domain.TimeSlot, error)
}

// ProviderDirectory справочник врачей (может отсутствовать)
type ProviderDirectory interface {
	GetProvider(ctx context.Context, providerID int64) (*providerdirectory.Provider, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
