package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/http/dto"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/workspace"
	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/Chandan-Choubey/Export-Csv/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Limits ограничения на размер запроса
type Limits struct {
	MaxRequestSize int64 // Всё тело запроса, включая изображение
	MaxFieldSize   int64 // Одно текстовое поле (описание листа)
}

// ExportHandler обработчик HTTP запросов на выгрузку
type ExportHandler struct {
	exportUC   *usecase.ExportUseCase
	workspaces *workspace.Manager
	limits     Limits
	logger     *zap.Logger
}

// NewExportHandler создаёт новый ExportHandler
func NewExportHandler(
	exportUC *usecase.ExportUseCase,
	workspaces *workspace.Manager,
	limits Limits,
	logger *zap.Logger,
) *ExportHandler {
	return &ExportHandler{
		exportUC:   exportUC,
		workspaces: workspaces,
		limits:     limits,
		logger:     logger,
	}
}

// Convert строит архив из листов формы
// POST /convert
// Content-Type: multipart/form-data
// - <имя листа>: JSON {data, style, config}
// - file: необязательное изображение (JPEG, PNG, GIF)
func (h *ExportHandler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxRequestSize)

	ws, err := h.workspaces.Create()
	if err != nil {
		h.logger.Error("Failed to create workspace", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	// Рабочая директория удаляется на любом пути выхода
	defer ws.Cleanup()

	form, err := h.readForm(r, ws)
	if err != nil {
		h.logger.Warn("Failed to read export form",
			zap.String("export_id", ws.ID().String()),
			zap.Error(err),
		)
		h.respondFormError(w, err)
		return
	}

	result, err := h.exportUC.Export(r.Context(), usecase.ExportInput{
		Workspace: ws,
		Sheets:    form.sheets,
		Image:     form.image,
	})
	if err != nil {
		h.respondExportError(w, ws.ID(), err)
		return
	}

	h.sendArchive(w, r, result)
}

// sendArchive отдаёт архив как файл для скачивания
func (h *ExportHandler) sendArchive(w http.ResponseWriter, r *http.Request, result *usecase.ExportResult) {
	file, err := os.Open(result.ArchivePath)
	if err != nil {
		h.logger.Error("Failed to open archive", zap.String("export_id", result.ID.String()), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		h.logger.Error("Failed to stat archive", zap.String("export_id", result.ID.String()), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.ArchiveFileName))
	w.Header().Set("X-Export-ID", result.ID.String())

	http.ServeContent(w, r, domain.ArchiveFileName, info.ModTime(), file)
}

// Get возвращает запись журнала выгрузок
// GET /api/v1/exports/{id}
func (h *ExportHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_id", "Invalid export ID format")
		return
	}

	details, err := h.exportUC.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrExportNotFound) || errors.Is(err, usecase.ErrJournalDisabled) {
			h.respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		h.logger.Error("Failed to get export", zap.String("export_id", idStr), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to get export")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ExportFromDetails(details))
}

// List возвращает журнал выгрузок
// GET /api/v1/exports?page=1&page_size=20&status=completed
func (h *ExportHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	pagination := domain.NewPagination(page, pageSize)

	filter := domain.ExportFilter{}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := domain.ExportStatus(statusStr)
		if status.IsValid() {
			filter.Status = &status
		}
	}

	result, err := h.exportUC.List(r.Context(), filter, pagination)
	if err != nil {
		if errors.Is(err, usecase.ErrJournalDisabled) {
			h.respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		h.logger.Error("Failed to list exports", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to list exports")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ExportListFromDomain(result))
}

func (h *ExportHandler) respondFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		h.respondError(w, http.StatusBadRequest, "invalid_file_type", "Unsupported file type. Supported: JPEG, PNG, GIF")
	case errors.Is(err, errUnexpectedFile):
		h.respondError(w, http.StatusBadRequest, "unexpected_file", err.Error())
	case errors.Is(err, errTooLarge):
		h.respondError(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error())
	case errors.Is(err, errInvalidForm):
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form data")
	default:
		h.respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func (h *ExportHandler) respondExportError(w http.ResponseWriter, exportID uuid.UUID, err error) {
	if usecase.IsRejection(err) {
		h.logger.Warn("Export rejected",
			zap.String("export_id", exportID.String()),
			zap.Error(err),
		)
	}

	var opErr *domain.InvalidOperationError
	switch {
	case errors.As(err, &opErr):
		resp := dto.NewErrorResponse("invalid_operation", opErr.Error())
		for _, op := range domain.SupportedOperations {
			resp.SupportedOperations = append(resp.SupportedOperations, op.String())
		}
		h.respondJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrInvalidAggregate):
		h.respondError(w, http.StatusBadRequest, "invalid_aggregate", err.Error())
	case errors.Is(err, domain.ErrInvalidSheetName):
		h.respondError(w, http.StatusBadRequest, "invalid_sheet_name", err.Error())
	default:
		h.logger.Error("Export failed",
			zap.String("export_id", exportID.String()),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// respondJSON отправляет JSON ответ
func (h *ExportHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError отправляет ответ с ошибкой
func (h *ExportHandler) respondError(w http.ResponseWriter, status int, errCode string, message string) {
	h.respondJSON(w, status, dto.NewErrorResponse(errCode, message))
}
