package report

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"loan-report/domain"
)

const (
	utf8Family = "LoanSans"
	coreFamily = "Helvetica"
)

// Fonts holds TrueType font files for the regular and bold faces. With no
// fonts the core Helvetica family is used, which only covers Latin locales.
type Fonts struct {
	Regular []byte
	Bold    []byte
}

// DefaultFonts returns the embedded Go fonts. They cover Cyrillic, so every
// bundled locale renders without system fonts.
func DefaultFonts() Fonts {
	return Fonts{Regular: goregular.TTF, Bold: gobold.TTF}
}

// LoadFonts reads both faces from disk. An empty path keeps the embedded face.
func LoadFonts(regularPath, boldPath string) (Fonts, error) {
	f := DefaultFonts()
	var err error
	if regularPath != "" {
		if f.Regular, err = os.ReadFile(regularPath); err != nil {
			return Fonts{}, fmt.Errorf("%w: read regular font: %v", domain.ErrFontUnavailable, err)
		}
	}
	if boldPath != "" {
		if f.Bold, err = os.ReadFile(boldPath); err != nil {
			return Fonts{}, fmt.Errorf("%w: read bold font: %v", domain.ErrFontUnavailable, err)
		}
	}
	return f, nil
}

func (f Fonts) hasUTF8() bool {
	return len(f.Regular) > 0
}

// fontSet selects font families on a document and converts text for them.
type fontSet struct {
	family    string
	bold      bool
	translate func(string) string
}

func registerFonts(pdf *fpdf.Fpdf, fonts Fonts, labels Labels) (fontSet, error) {
	if !fonts.hasUTF8() {
		if !labels.Latin {
			return fontSet{}, fmt.Errorf("%w: locale needs TrueType fonts", domain.ErrFontUnavailable)
		}
		return fontSet{
			family:    coreFamily,
			bold:      true,
			translate: toWindows1252,
		}, nil
	}

	pdf.AddUTF8FontFromBytes(utf8Family, "", fonts.Regular)
	hasBold := len(fonts.Bold) > 0
	if hasBold {
		pdf.AddUTF8FontFromBytes(utf8Family, "B", fonts.Bold)
	}
	if pdf.Err() {
		return fontSet{}, fmt.Errorf("%w: %v", domain.ErrFontUnavailable, pdf.Error())
	}
	return fontSet{
		family:    utf8Family,
		bold:      hasBold,
		translate: func(s string) string { return s },
	}, nil
}

// toWindows1252 encodes s for the core fonts; unsupported runes become "?".
func toWindows1252(s string) string {
	out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(s)
	if err != nil {
		return s
	}
	return out
}

func (fs fontSet) regular(pdf *fpdf.Fpdf, size float64) {
	pdf.SetFont(fs.family, "", size)
}

// heading falls back to the regular face when no bold face was supplied.
func (fs fontSet) heading(pdf *fpdf.Fpdf, size float64) {
	if fs.bold {
		pdf.SetFont(fs.family, "B", size)
		return
	}
	pdf.SetFont(fs.family, "", size)
}
