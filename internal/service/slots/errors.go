package slots

import (
	"errors"

	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = scheduler.ErrSlotNotFound

	// ErrAccessDenied возвращается, когда слот меняет не его врач
	ErrAccessDenied = scheduler.ErrUnauthorized

	// ErrServiceUnavailable возвращается при временной недоступности хранилища
	ErrServiceUnavailable = scheduler.ErrAdapterUnavailable

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
