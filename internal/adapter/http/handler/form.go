package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/workspace"
	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/Chandan-Choubey/Export-Csv/internal/usecase"
)

// Поле формы с изображением
const imageField = "file"

var (
	errInvalidForm    = errors.New("invalid multipart form")
	errUnexpectedFile = errors.New("unexpected file field")
	errTooLarge       = errors.New("request exceeds size limit")
)

// exportForm поля формы в порядке отправки
type exportForm struct {
	sheets []usecase.SheetInput
	image  *domain.Image
}

// readForm читает multipart поток последовательно, сохраняя порядок листов.
// Изображение сохраняется в каталог загрузок рабочей директории.
func (h *ExportHandler) readForm(r *http.Request, ws *workspace.Workspace) (*exportForm, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}

	form := &exportForm{}
	seen := make(map[string]bool)

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapBodyError(err)
		}

		if err := h.readPart(part.FormName(), part.FileName(), part.Header.Get("Content-Type"), part, ws, form, seen); err != nil {
			part.Close()
			return nil, err
		}
		part.Close()
	}

	return form, nil
}

func (h *ExportHandler) readPart(
	name, fileName, contentType string,
	body io.Reader,
	ws *workspace.Workspace,
	form *exportForm,
	seen map[string]bool,
) error {
	if fileName != "" {
		if name != imageField || form.image != nil {
			return fmt.Errorf("%w %q", errUnexpectedFile, name)
		}
		if err := domain.ValidateContentType(contentType); err != nil {
			return err
		}

		path, _, err := ws.SaveUpload(body, h.limits.MaxRequestSize)
		if err != nil {
			return wrapBodyError(err)
		}

		form.image = &domain.Image{
			FileName:    fileName,
			ContentType: contentType,
			Path:        path,
		}
		return nil
	}

	value, err := io.ReadAll(io.LimitReader(body, h.limits.MaxFieldSize+1))
	if err != nil {
		return wrapBodyError(err)
	}
	if int64(len(value)) > h.limits.MaxFieldSize {
		return fmt.Errorf("%w: %q", errTooLarge, name)
	}

	// Повтор поля игнорируется: лист берётся из первого вхождения
	if name == "" || seen[name] {
		return nil
	}
	seen[name] = true

	form.sheets = append(form.sheets, usecase.SheetInput{Name: name, Payload: string(value)})
	return nil
}

// wrapBodyError отличает превышение лимита тела от повреждённой формы
func wrapBodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || errors.Is(err, workspace.ErrUploadTooLarge) {
		return fmt.Errorf("%w: %v", errTooLarge, err)
	}
	return fmt.Errorf("%w: %v", errInvalidForm, err)
}
