package shoppinglist

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for unknown format tokens or enum values.
var ErrUnsupportedFormat = errors.New("shopping list: unsupported format")

// Format selects the rendering of a shopping list.
type Format int

const (
	// FormatText renders newline separated plain text.
	FormatText Format = iota + 1
	// FormatPaginated renders a paged PDF document.
	FormatPaginated
)

// Format tokens accepted from clients.
const (
	TokenText      = "txt"
	TokenPaginated = "pdf"
)

// ParseFormat maps a client supplied token to a Format. Tokens match exactly;
// an empty token selects text.
func ParseFormat(token string) (Format, error) {
	switch token {
	case "", TokenText:
		return FormatText, nil
	case TokenPaginated:
		return FormatPaginated, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, token)
	}
}

// String returns the client token of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return TokenText
	case FormatPaginated:
		return TokenPaginated
	default:
		return "unknown"
	}
}

// Document is a rendered shopping list ready for delivery.
type Document struct {
	Body        []byte
	ContentType string
	Filename    string
}

// ContentDisposition returns the attachment header value for the document.
func (d Document) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", d.Filename)
}

// Wrap attaches the content type and download filename of the format to body.
func Wrap(body []byte, f Format) (Document, error) {
	switch f {
	case FormatText:
		return Document{Body: body, ContentType: "text/plain", Filename: "shopping_list.txt"}, nil
	case FormatPaginated:
		return Document{Body: body, ContentType: "application/pdf", Filename: "shopping_list.pdf"}, nil
	default:
		return Document{}, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, int(f))
	}
}
