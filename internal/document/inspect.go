// Package document checks downloaded invoice documents before they are
// handed to callers or written to disk.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotPDF is returned when the content lacks a PDF header
var ErrNotPDF = errors.New("document is not a PDF")

var pdfMagic = []byte("%PDF-")

func init() {
	// keep pdfcpu from creating a config directory in the user's home
	api.DisableConfigDir()
}

// Info describes a validated PDF document
type Info struct {
	Version string `json:"version"`
	Pages   int    `json:"pages"`
	Size    int64  `json:"size"`
}

// Inspect validates rs as a PDF and reports its page count. rs is rewound to
// offset 0 before returning, whatever the outcome.
func Inspect(rs io.ReadSeeker) (info *Info, err error) {
	defer func() {
		if _, seekErr := rs.Seek(0, io.SeekStart); seekErr != nil && err == nil {
			info, err = nil, fmt.Errorf("rewind document: %w", seekErr)
		}
	}()

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("measure document: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind document: %w", err)
	}

	header := make([]byte, 8)
	n, _ := io.ReadFull(rs, header)
	if !bytes.HasPrefix(header[:n], pdfMagic) {
		return nil, ErrNotPDF
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind document: %w", err)
	}
	if err := api.Validate(rs, conf); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind document: %w", err)
	}
	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}

	return &Info{
		Version: string(bytes.TrimSpace(header[len(pdfMagic):n])),
		Pages:   pages,
		Size:    size,
	}, nil
}
