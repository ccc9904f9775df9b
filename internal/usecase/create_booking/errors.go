package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = scheduler.ErrSlotNotFound

	// ErrSlotFull возвращается, когда в слоте нет мест или он закрыт
	ErrSlotFull = scheduler.ErrSlotFull

	// ErrDuplicateBooking возвращается, когда клиент уже записан на этот слот
	ErrDuplicateBooking = scheduler.ErrDuplicateBooking

	// ErrOverlapConflict возвращается, когда у клиента есть запись, пересекающаяся по времени
	ErrOverlapConflict = scheduler.ErrOverlapConflict

	// ErrServiceUnavailable хранилище временно недоступно, запрос можно повторить
	ErrServiceUnavailable = scheduler.ErrAdapterUnavailable

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
