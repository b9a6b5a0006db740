// Package upload runs the pre-flight checks a file must pass before any
// upload bytes leave the process.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// The backend accepts only these document types.
var allowedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

const maxFilenameLength = 255

type Info struct {
	Path     string
	Filename string
	Ext      string
	Size     int64

	// PDFPages is filled for parseable PDFs, zero otherwise.
	PDFPages int
	// Warning carries non-fatal findings (e.g. an unparseable PDF).
	Warning string
}

// Inspect validates the file locally: existence, filename length, accepted
// extension and the size limit. A 15 MB file fails here with the fixed
// size-limit message before any network call.
func Inspect(path string, limitBytes int64) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("inspect upload: %w", err)
	}
	if stat.IsDir() {
		return Info{}, fmt.Errorf("inspect upload: %s is a directory", path)
	}

	info := Info{
		Path:     path,
		Filename: filepath.Base(path),
		Ext:      strings.ToLower(filepath.Ext(path)),
		Size:     stat.Size(),
	}

	if len(info.Filename) > maxFilenameLength {
		return Info{}, fmt.Errorf("filename exceeds %d characters", maxFilenameLength)
	}
	if !allowedExtensions[info.Ext] {
		return Info{}, fmt.Errorf("unsupported file type %q (allowed: .pdf, .txt)", info.Ext)
	}
	if info.Size > limitBytes {
		return Info{}, fmt.Errorf("file exceeds the %d MB upload limit", limitBytes>>20)
	}

	if info.Ext == ".pdf" {
		pages, err := pdfPageCount(path)
		if err != nil {
			info.Warning = fmt.Sprintf("could not read PDF structure: %v", err)
		} else {
			info.PDFPages = pages
		}
	}
	return info, nil
}

func pdfPageCount(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return reader.NumPage(), nil
}
