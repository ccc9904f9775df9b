package get_clinic_hours

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/service/slots/models"
)

type SlotService interface {
	GetClinicHours(date *time.Time) *models.ClinicHoursResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
