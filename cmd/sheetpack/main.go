package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/archive"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/workspace"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/xlsx"
	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/Chandan-Choubey/Export-Csv/internal/usecase"
	"github.com/Chandan-Choubey/Export-Csv/pkg/logger"
	"github.com/spf13/cobra"
)

// renderOptions флаги команды render
type renderOptions struct {
	outputPath       string
	imagePath        string
	workDir          string
	compressionLevel int
	logLevel         string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetpack",
		Short: "Render JSON sheet payloads into an xlsx + csv archive",
	}

	opts := &renderOptions{}
	renderCmd := &cobra.Command{
		Use:   "render name=payload.json [name=payload.json...]",
		Short: "Render sheets into a zip archive",
		Long: `render reads one JSON payload file per sheet ({"data": [...], "style": {...}, "config": {...}})
and writes a zip archive with output.xlsx and one <name>.csv per sheet.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	renderCmd.Flags().StringVarP(&opts.outputPath, "out", "o", domain.ArchiveFileName, "Output archive path")
	renderCmd.Flags().StringVar(&opts.imagePath, "image", "", "Image to embed into the sheet named after the file")
	renderCmd.Flags().StringVar(&opts.workDir, "work-dir", os.TempDir(), "Directory for temporary files")
	renderCmd.Flags().IntVar(&opts.compressionLevel, "level", 9, "Deflate compression level (1-9)")
	renderCmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(renderCmd)
	return rootCmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	if opts.compressionLevel < 1 || opts.compressionLevel > 9 {
		return fmt.Errorf("invalid level: %d (must be 1..9)", opts.compressionLevel)
	}

	log, err := logger.NewWithWriter(opts.logLevel, "console", cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer log.Sync()

	sheets, err := readSheetArgs(args)
	if err != nil {
		return err
	}

	image, err := readImageArg(opts.imagePath)
	if err != nil {
		return err
	}

	manager, err := workspace.NewManager(opts.workDir, log)
	if err != nil {
		return err
	}
	ws, err := manager.Create()
	if err != nil {
		return err
	}
	defer ws.Cleanup()

	exportUC := usecase.NewExportUseCase(
		xlsx.NewRenderer(log.Named("xlsx")),
		archive.NewZipArchiver(opts.compressionLevel),
		nil,
		nil,
		log,
	)

	result, err := exportUC.Export(cmd.Context(), usecase.ExportInput{
		Workspace: ws,
		Sheets:    sheets,
		Image:     image,
	})
	if err != nil {
		return err
	}

	if err := copyFile(result.ArchivePath, opts.outputPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.outputPath, err)
	}

	for _, name := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped malformed sheet %q\n", name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sheet(s), %d bytes\n", opts.outputPath, len(result.Sheets), result.ArchiveSize)

	return nil
}

// readImageArg тип изображения определяется по расширению файла
func readImageArg(path string) (*domain.Image, error) {
	if path == "" {
		return nil, nil
	}

	image := &domain.Image{
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Path:        path,
	}
	if err := domain.ValidateContentType(image.ContentType); err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	return image, nil
}

// readSheetArgs разбирает аргументы вида name=path
func readSheetArgs(args []string) ([]usecase.SheetInput, error) {
	sheets := make([]usecase.SheetInput, 0, len(args))
	for _, arg := range args {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid sheet argument %q: expected name=payload.json", arg)
		}
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload for sheet %q: %w", name, err)
		}
		sheets = append(sheets, usecase.SheetInput{Name: name, Payload: string(payload)})
	}
	return sheets, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
