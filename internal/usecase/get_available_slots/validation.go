package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не раньше сегодняшней
func validateDate(requestDate time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if domain.DateOnly(requestDate).Before(today) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, requestDate.Format(domain.DateFormat))
	}
	return nil
}
