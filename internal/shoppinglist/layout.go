package shoppinglist

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPageSetup is returned when page geometry cannot hold a single line.
var ErrInvalidPageSetup = errors.New("shopping list: invalid page setup")

// PageSetup describes the printable page geometry in points.
// Vertical positions are measured from the bottom edge of the page.
type PageSetup struct {
	PageWidth    float64
	PageHeight   float64
	TopMargin    float64
	BottomMargin float64
	LeftMargin   float64
	LineHeight   float64
	TitleGap     float64
	FontSize     float64
	Title        string
}

// DefaultPageSetup returns a US-letter page with a 12pt body.
func DefaultPageSetup() PageSetup {
	return PageSetup{
		PageWidth:    612,
		PageHeight:   792,
		TopMargin:    750,
		BottomMargin: 50,
		LeftMargin:   50,
		LineHeight:   20,
		TitleGap:     25,
		FontSize:     12,
		Title:        "Shopping list:",
	}
}

// Validate checks the geometry.
func (s PageSetup) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"page width", s.PageWidth},
		{"page height", s.PageHeight},
		{"top margin", s.TopMargin},
		{"bottom margin", s.BottomMargin},
		{"left margin", s.LeftMargin},
		{"line height", s.LineHeight},
		{"title gap", s.TitleGap},
		{"font size", s.FontSize},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidPageSetup, f.name)
		}
	}
	switch {
	case s.PageWidth <= 0 || s.PageHeight <= 0:
		return fmt.Errorf("%w: page size %.0fx%.0f", ErrInvalidPageSetup, s.PageWidth, s.PageHeight)
	case s.LineHeight <= 0:
		return fmt.Errorf("%w: line height %.2f", ErrInvalidPageSetup, s.LineHeight)
	case s.TopMargin > s.PageHeight:
		return fmt.Errorf("%w: top margin %.2f above page height %.2f", ErrInvalidPageSetup, s.TopMargin, s.PageHeight)
	case s.BottomMargin < 0 || s.TopMargin < s.BottomMargin:
		return fmt.Errorf("%w: bottom margin %.2f", ErrInvalidPageSetup, s.BottomMargin)
	case s.FontSize <= 0:
		return fmt.Errorf("%w: font size %.2f", ErrInvalidPageSetup, s.FontSize)
	}
	return nil
}

// PlacedLine is a line of text anchored at a baseline position.
type PlacedLine struct {
	Text string
	X    float64
	Y    float64
}

// Page holds the lines drawn on a single page, title included.
type Page struct {
	Lines []PlacedLine
}

// Layout is the page-by-page placement of a shopping list.
type Layout struct {
	Pages []Page
}

// Breaks reports how many page breaks the layout contains.
func (l Layout) Breaks() int {
	if len(l.Pages) == 0 {
		return 0
	}
	return len(l.Pages) - 1
}

// Paginate places the title and every entry on fixed-height pages.
// Before an entry is written, a cursor that has dropped below the bottom
// margin starts a new page at the top margin.
func Paginate(r Result, setup PageSetup) Layout {
	cursor := setup.TopMargin
	page := Page{Lines: make([]PlacedLine, 0, r.Len()+1)}
	if setup.Title != "" {
		page.Lines = append(page.Lines, PlacedLine{Text: setup.Title, X: setup.LeftMargin, Y: cursor})
		cursor -= setup.TitleGap
	}

	var pages []Page
	for _, e := range r.Entries {
		if cursor < setup.BottomMargin {
			pages = append(pages, page)
			page = Page{}
			cursor = setup.TopMargin
		}
		page.Lines = append(page.Lines, PlacedLine{Text: FormatEntry(e), X: setup.LeftMargin, Y: cursor})
		cursor -= setup.LineHeight
	}
	return Layout{Pages: append(pages, page)}
}
