package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractPlainText(t *testing.T) {
	for _, ext := range []string{"txt", ".txt", "md", "csv", "TXT"} {
		got, err := Extract([]byte("こんにちは\nworld"), ext)
		require.NoError(t, err, "ext %q", ext)
		assert.Equal(t, "こんにちは\nworld", got)
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract([]byte("data"), "exe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "exe")
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "名前"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "役割"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "音狼ビビ"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "VTuber"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := Extract(buf.Bytes(), "xlsx")
	require.NoError(t, err)
	assert.Contains(t, got, "# Sheet1")
	assert.Contains(t, got, "名前\t役割")
	assert.Contains(t, got, "音狼ビビ\tVTuber")
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractDOCX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>一行目</w:t></w:r><w:r><w:t>の続き</w:t></w:r></w:p>
    <w:p><w:r><w:t>二行目</w:t></w:r></w:p>
  </w:body>
</w:document>`

	got, err := Extract(buildDocx(t, doc), "docx")
	require.NoError(t, err)
	assert.Contains(t, got, "一行目の続き\n")
	assert.Contains(t, got, "二行目\n")
}

func TestExtractDOCXMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extract(buf.Bytes(), "docx")
	require.Error(t, err)
}

func TestExtractCorruptBlob(t *testing.T) {
	for _, ext := range []string{"xlsx", "pdf", "docx"} {
		_, err := Extract([]byte("not a real file"), ext)
		assert.Error(t, err, "ext %q", ext)
		assert.False(t, errors.Is(err, ErrUnsupportedFormat), "corrupt %s must not be reported as unsupported", ext)
	}
}
