// Package storage holds the error contract shared by all slot and reservation stores.
package storage

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("storage: slot not found")

	// ErrSlotFull возвращается, когда условное увеличение счётчика не прошло (мест нет или слот закрыт)
	ErrSlotFull = errors.New("storage: slot is full")

	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("storage: reservation not found")

	// ErrDuplicateReservation возвращается при нарушении уникальности активной записи клиента на слот
	ErrDuplicateReservation = errors.New("storage: active reservation already exists")

	// ErrStatusConflict возвращается, когда статус записи изменился между чтением и обновлением
	ErrStatusConflict = errors.New("storage: reservation status changed concurrently")
)
