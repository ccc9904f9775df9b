package scheduler

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Candidate слот, на который клиент пытается записаться
type Candidate struct {
	SlotID uuid.UUID
	Window domain.SlotWindow
}

// CandidateFromSlot строит кандидата из слота
func CandidateFromSlot(slot *domain.TimeSlot) Candidate {
	return Candidate{SlotID: slot.ID, Window: slot.Window()}
}

// FindConflict возвращает первую запись клиента, конфликтующую с кандидатом, или nil
// Учитываются только неотменённые записи этого клиента на ту же дату
// Запись на тот же слот проверяется раньше пересечений, чтобы дубль не маскировался пересечением
//
// Пересечение строгое: 08:00-09:30 и 09:30-11:00 НЕ пересекаются
func FindConflict(clientID int64, candidate Candidate, existing []*domain.Reservation) *domain.Reservation {
	relevant := make([]*domain.Reservation, 0, len(existing))
	for _, r := range existing {
		if r == nil || r.ClientID != clientID || !r.IsActive() {
			continue
		}
		if !domain.SameDate(r.Date, candidate.Window.Date) {
			continue
		}
		if r.SlotID == candidate.SlotID {
			return r
		}
		relevant = append(relevant, r)
	}

	for _, r := range relevant {
		if candidate.Window.Overlaps(r.Window()) {
			return r
		}
	}

	return nil
}

// HasConflict сообщает, есть ли у клиента запись, мешающая записаться на кандидата
func HasConflict(clientID int64, candidate Candidate, existing []*domain.Reservation) bool {
	return FindConflict(clientID, candidate, existing) != nil
}

// conflictError переводит найденный конфликт в ошибку бронирования
func conflictError(candidate Candidate, conflict *domain.Reservation) error {
	if conflict.SlotID == candidate.SlotID {
		return ErrDuplicateBooking
	}
	return ErrOverlapConflict
}
