package ocr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// ErrUnsupportedType — файл не пригоден для распознавания.
var ErrUnsupportedType = errors.New("unsupported file type for ocr")

// Extractor — контракт распознавания: путь и заявленный тип на входе,
// извлечённый текст на выходе. Пустой текст без ошибки допустим.
type Extractor interface {
	ExtractText(path, mimeType string) (string, error)
}

// TesseractExtractor выполняет OCR через Tesseract (gosseract)
// с лёгкой предобработкой изображения.
type TesseractExtractor struct {
	Lang string
}

func New(lang string) *TesseractExtractor {
	if lang == "" {
		lang = "eng"
	}
	return &TesseractExtractor{Lang: lang}
}

// минимальная ширина, ниже которой изображение масштабируется перед OCR
const minWidth = 900

func (e *TesseractExtractor) ExtractText(path, mimeType string) (string, error) {
	if !Supported(mimeType) {
		return "", ErrUnsupportedType
	}

	work, cleanup, err := preprocess(path)
	if err != nil {
		return "", fmt.Errorf("preprocess: %w", err)
	}
	defer cleanup()

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(e.Lang); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(work); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return Normalize(text), nil
}

// Supported сообщает, умеем ли мы распознавать данный MIME-тип.
func Supported(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/png", "image/jpeg", "image/jpg", "image/tiff", "image/bmp":
		return true
	}
	return false
}

// preprocess переводит изображение в оттенки серого и при необходимости
// масштабирует; результат пишется во временный PNG.
func preprocess(path string) (string, func(), error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, err
	}
	g := imaging.Grayscale(img)
	if g.Bounds().Dx() < minWidth {
		g = imaging.Resize(g, minWidth, 0, imaging.Lanczos)
	}

	tmp, err := os.CreateTemp("", "ocr-*.png")
	if err != nil {
		return "", nil, err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	if err := imaging.Save(g, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", nil, err
	}
	return tmpPath, func() { _ = os.Remove(tmpPath) }, nil
}

// Normalize чистит сырой вывод Tesseract: схлопывает пустые строки
// и обрезает пробелы по краям строк.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}

// MimeByExt — запасной вариант определения типа по расширению,
// когда клиент не прислал Content-Type.
func MimeByExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
