package providerdirectory

import "errors"

var (
	// ErrProviderNotFound возвращается, когда врача нет в справочнике
	ErrProviderNotFound = errors.New("providerdirectory client: provider not found")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("providerdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("providerdirectory client: invalid response")
)
