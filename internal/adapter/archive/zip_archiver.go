package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// ZipArchiver собирает файлы выгрузки в zip-архив
type ZipArchiver struct {
	level int
}

// NewZipArchiver создаёт архиватор с заданным уровнем сжатия deflate
func NewZipArchiver(level int) *ZipArchiver {
	return &ZipArchiver{level: level}
}

// Create записывает entries в архив dst и возвращает его размер
func (a *ZipArchiver) Create(ctx context.Context, dst string, entries []domain.ArchiveEntry) (int64, error) {
	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, a.level)
	})

	now := time.Now()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return 0, err
		}
		if err := addFile(zw, entry, now); err != nil {
			zw.Close()
			return 0, err
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize archive: %w", err)
	}

	info, err := out.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat archive: %w", err)
	}

	return info.Size(), nil
}

func addFile(zw *zip.Writer, entry domain.ArchiveEntry, modified time.Time) error {
	src, err := os.Open(entry.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", entry.Name, err)
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     entry.Name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", entry.Name, err)
	}

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", entry.Name, err)
	}

	return nil
}
