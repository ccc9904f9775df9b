package scheduler

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не существует
	ErrSlotNotFound = errors.New("scheduler: slot not found")

	// ErrSlotFull возвращается, когда в слоте нет свободных мест или он закрыт
	ErrSlotFull = errors.New("scheduler: slot is full")

	// ErrDuplicateBooking возвращается, когда у клиента уже есть активная запись на этот слот
	ErrDuplicateBooking = errors.New("scheduler: you already have an appointment at this time")

	// ErrOverlapConflict возвращается, когда слот пересекается с другой активной записью клиента
	ErrOverlapConflict = errors.New("scheduler: you already have an appointment during this time period")

	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("scheduler: reservation not found")

	// ErrUnauthorized возвращается, когда действие выполняет не клиент и не врач этой записи
	ErrUnauthorized = errors.New("scheduler: actor is not allowed to modify this reservation")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("scheduler: invalid status transition")

	// ErrInvalidInput возвращается при некорректных аргументах
	ErrInvalidInput = errors.New("scheduler: invalid input")

	// ErrAdapterUnavailable возвращается при временной недоступности хранилища. Единственная ошибка, которую можно повторить
	ErrAdapterUnavailable = errors.New("scheduler: storage unavailable")
)

// IsRetryable сообщает, имеет ли смысл повторить операцию
func IsRetryable(err error) bool {
	return errors.Is(err, ErrAdapterUnavailable)
}
