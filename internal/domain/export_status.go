package domain

// ExportStatus представляет статус выгрузки
type ExportStatus string

const (
	ExportStatusProcessing ExportStatus = "processing" // Листы отрисовываются
	ExportStatusCompleted  ExportStatus = "completed"  // Архив собран
	ExportStatusRejected   ExportStatus = "rejected"   // Некорректный запрос (400)
	ExportStatusFailed     ExportStatus = "failed"     // Внутренняя ошибка (500)
)

// IsValid проверяет валидность статуса
func (s ExportStatus) IsValid() bool {
	switch s {
	case ExportStatusProcessing, ExportStatusCompleted, ExportStatusRejected, ExportStatusFailed:
		return true
	}
	return false
}

// IsFinal проверяет, является ли статус финальным
func (s ExportStatus) IsFinal() bool {
	return s != ExportStatusProcessing
}

func (s ExportStatus) String() string {
	return string(s)
}
