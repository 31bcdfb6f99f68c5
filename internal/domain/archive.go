package domain

// Имена файлов выгрузки
const (
	WorkbookFileName = "output.xlsx"
	ArchiveFileName  = "output.zip"
)

// ArchiveEntry файл, попадающий в архив
type ArchiveEntry struct {
	Name string // Имя внутри архива
	Path string // Путь на диске
}
