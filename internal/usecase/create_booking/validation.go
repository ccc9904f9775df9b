package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.SlotID == uuid.Nil {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	if req.MedicalCondition != nil && utf8.RuneCountInString(*req.MedicalCondition) > domain.MaxMedicalConditionLength {
		return fmt.Errorf("%w: medicalCondition must be at most %d characters", ErrInvalidInput, domain.MaxMedicalConditionLength)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
