package check_conflict

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations/models"
)

type ReservationService interface {
	CheckConflict(ctx context.Context, req *models.CheckConflictRequest) (*models.ConflictResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
