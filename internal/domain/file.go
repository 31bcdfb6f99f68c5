package domain

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// Поддерживаемые MIME типы загружаемого изображения
var supportedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Расширения, которые можно встроить в лист
var embeddableExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

// ValidateContentType проверяет поддерживается ли тип файла
func ValidateContentType(contentType string) error {
	// Убираем параметры типа charset
	ct := strings.Split(contentType, ";")[0]
	ct = strings.TrimSpace(strings.ToLower(ct))

	if !supportedContentTypes[ct] {
		return ErrUnsupportedFileType
	}
	return nil
}

// Image загруженное изображение, сохранённое в рабочей директории запроса
type Image struct {
	FileName    string // Оригинальное имя файла
	ContentType string
	Path        string // Путь к сохранённому файлу
}

// splitName делит имя файла на основу и расширение; ".png" — основа без расширения
func (i *Image) splitName() (string, string) {
	base := filepath.Base(i.FileName)
	ext := filepath.Ext(base)
	if ext == base {
		return base, ""
	}
	return strings.TrimSuffix(base, ext), ext
}

// BaseName имя файла без расширения
func (i *Image) BaseName() string {
	name, _ := i.splitName()
	return name
}

// Extension расширение в нижнем регистре без точки
func (i *Image) Extension() string {
	_, ext := i.splitName()
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MatchesSheet изображение встраивается в лист с тем же именем, что и файл
func (i *Image) MatchesSheet(sheetName string) bool {
	if i == nil {
		return false
	}
	return i.BaseName() == sheetName && embeddableExtensions[i.Extension()]
}
