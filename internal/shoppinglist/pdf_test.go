package shoppinglist

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"regexp"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

func TestRenderPaginatedProducesPDF(t *testing.T) {
	body, err := RenderPaginated(numberedResult(3), DefaultPageSetup())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")), "missing pdf header")
	require.Contains(t, string(body), "%%EOF")
}

func TestRenderPaginatedIsIdempotent(t *testing.T) {
	r := numberedResult(80)
	first, err := RenderPaginated(r, printSetup())
	require.NoError(t, err)
	second, err := RenderPaginated(r, printSetup())
	require.NoError(t, err)
	require.True(t, bytes.Equal(first, second), "renders differ")
}

func TestRenderPaginatedPinsDocumentDates(t *testing.T) {
	body, err := RenderPaginated(Result{}, DefaultPageSetup())
	require.NoError(t, err)

	dates := regexp.MustCompile(`/(CreationDate|ModDate) \(D:(\d{14})\)`).FindAllStringSubmatch(string(body), -1)
	require.Len(t, dates, 2)
	for _, d := range dates {
		require.Equal(t, "20000101000000", d[2], d[1])
	}
}

func TestRenderPaginatedKeepsCyrillicText(t *testing.T) {
	r := Result{Entries: []Entry{{Name: "Мука", Unit: "г", Total: 350}}}
	body, err := RenderPaginated(r, DefaultPageSetup())
	require.NoError(t, err)
	require.Contains(t, string(body), "/FontFile2")

	var content []byte
	for _, stream := range inflateStreams(body) {
		content = append(content, stream...)
	}
	require.True(t, bytes.Contains(content, utf16BE("Мука")), "ingredient name not drawn")
	require.True(t, bytes.Contains(content, utf16BE(" — 350")), "total not drawn")
}

func utf16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, 2*len(units))
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

// inflateStreams returns the decoded body of every deflated stream object.
func inflateStreams(body []byte) [][]byte {
	const open, closing = "stream\n", "\nendstream"
	var out [][]byte
	for rest := body; ; {
		i := bytes.Index(rest, []byte(open))
		if i < 0 {
			return out
		}
		rest = rest[i+len(open):]
		j := bytes.Index(rest, []byte(closing))
		if j < 0 {
			return out
		}
		if zr, err := zlib.NewReader(bytes.NewReader(rest[:j])); err == nil {
			if data, err := io.ReadAll(zr); err == nil {
				out = append(out, data)
			}
		}
		rest = rest[j+len(closing):]
	}
}

func TestRenderPaginatedPageCount(t *testing.T) {
	empty, err := RenderPaginated(Result{}, printSetup())
	require.NoError(t, err)
	require.Contains(t, string(empty), "/Count 1")

	multi, err := RenderPaginated(numberedResult(80), printSetup())
	require.NoError(t, err)
	require.Contains(t, string(multi), "/Count 3")
}

func TestRenderPaginatedRejectsInvalidSetup(t *testing.T) {
	setup := printSetup()
	setup.LineHeight = 0
	_, err := RenderPaginated(numberedResult(1), setup)
	require.True(t, errors.Is(err, ErrInvalidPageSetup), "got %v", err)
}
