package reservations

import (
	"errors"

	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = scheduler.ErrReservationNotFound

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = scheduler.ErrSlotNotFound

	// ErrAccessDenied возвращается, когда у пользователя нет прав на запись
	ErrAccessDenied = scheduler.ErrUnauthorized

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = scheduler.ErrInvalidTransition

	// ErrServiceUnavailable хранилище временно недоступно
	ErrServiceUnavailable = scheduler.ErrAdapterUnavailable

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
