package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUploadTooLarge = errors.New("upload exceeds size limit")
	ErrInvalidName    = errors.New("invalid file name")
)

const uploadsDir = "uploads"

// Manager создаёт рабочие директории запросов в общем базовом каталоге
type Manager struct {
	baseDir string
	logger  *zap.Logger
}

// NewManager создаёт базовый каталог, если его нет
func NewManager(baseDir string, logger *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	return &Manager{baseDir: baseDir, logger: logger}, nil
}

// Create создаёт рабочую директорию с уникальным именем
func (m *Manager) Create() (*Workspace, error) {
	id := uuid.New()
	dir := filepath.Join(m.baseDir, id.String())

	if err := os.MkdirAll(filepath.Join(dir, uploadsDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return &Workspace{id: id, dir: dir, logger: m.logger}, nil
}

// Workspace рабочая директория одного запроса: загрузки и все выходные файлы
type Workspace struct {
	id     uuid.UUID
	dir    string
	logger *zap.Logger
}

// ID идентификатор запроса
func (w *Workspace) ID() uuid.UUID {
	return w.id
}

// Dir путь к директории
func (w *Workspace) Dir() string {
	return w.dir
}

// Path путь к файлу внутри директории
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteFile записывает файл в корень директории
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	path := w.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// SaveUpload сохраняет загруженный файл под служебным именем, не длиннее limit байт
func (w *Workspace) SaveUpload(r io.Reader, limit int64) (string, int64, error) {
	f, err := os.CreateTemp(filepath.Join(w.dir, uploadsDir), "upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		return "", 0, fmt.Errorf("failed to save upload: %w", err)
	}
	if n > limit {
		return "", 0, ErrUploadTooLarge
	}

	return f.Name(), n, nil
}

// Cleanup удаляет директорию со всем содержимым
func (w *Workspace) Cleanup() {
	if err := os.RemoveAll(w.dir); err != nil {
		w.logger.Error("Failed to remove workspace",
			zap.String("export_id", w.id.String()),
			zap.String("dir", w.dir),
			zap.Error(err),
		)
	}
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
