package get_available_slots

import (
	"errors"

	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

var (
	// ErrProviderNotFound возвращается, когда врача нет в справочнике
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderInactive возвращается, когда врач не принимает пациентов
	ErrProviderInactive = errors.New("provider is not accepting appointments")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrServiceUnavailable хранилище слотов временно недоступно, запрос можно повторить
	ErrServiceUnavailable = scheduler.ErrAdapterUnavailable

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
