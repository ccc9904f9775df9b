package providerdirectory

// Provider модель врача из справочника
type Provider struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	IsActive       bool   `json:"is_active"`
}
