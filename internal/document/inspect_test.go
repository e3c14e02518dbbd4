package document_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ifirma/internal/document"
)

func TestInspect_NotPDF(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"json envelope", `{"response":{"Kod":201}}`},
		{"empty", ""},
		{"html", "<html></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := bytes.NewReader([]byte(tt.data))

			info, err := document.Inspect(rs)
			require.ErrorIs(t, err, document.ErrNotPDF)
			assert.Nil(t, info)

			pos, err := rs.Seek(0, io.SeekCurrent)
			require.NoError(t, err)
			assert.Equal(t, int64(0), pos)
		})
	}
}

func TestInspect_Truncated(t *testing.T) {
	rs := bytes.NewReader([]byte("%PDF-1.4\n%truncated download"))

	_, err := document.Inspect(rs)
	require.Error(t, err)
	assert.NotErrorIs(t, err, document.ErrNotPDF)

	pos, err := rs.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

// twoPagePDF builds a minimal valid PDF 1.4 document with two empty pages
func twoPagePDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestInspect_ValidDocument(t *testing.T) {
	data := twoPagePDF()
	rs := bytes.NewReader(data)

	info, err := document.Inspect(rs)
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "1.4", info.Version)
	assert.Equal(t, 2, info.Pages)
	assert.Equal(t, int64(len(data)), info.Size)

	pos, err := rs.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestInspect_ReadableAfterInspection(t *testing.T) {
	data := twoPagePDF()
	rs := bytes.NewReader(data)

	_, err := document.Inspect(rs)
	require.NoError(t, err)

	copied, err := io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, data, copied)
}
