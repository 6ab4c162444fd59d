package shoppinglist

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/goregular"
)

// pdfFont is the embedded UTF-8 family; its glyphs cover Latin and Cyrillic.
const pdfFont = "GoRegular"

// documentEpoch pins the creation and modification dates so equal input
// yields equal bytes.
var documentEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// RenderPaginated lays the result out on pages and encodes them as a PDF.
func RenderPaginated(r Result, setup PageSetup) ([]byte, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	return encodePDF(Paginate(r, setup), setup)
}

func encodePDF(layout Layout, setup PageSetup) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: setup.PageWidth, Ht: setup.PageHeight},
	})
	pdf.SetCreationDate(documentEpoch)
	pdf.SetModificationDate(documentEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Shopping list", true)
	pdf.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	pdf.SetFont(pdfFont, "", setup.FontSize)

	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			// fpdf measures from the top edge.
			pdf.Text(line.X, setup.PageHeight-line.Y, line.Text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}
