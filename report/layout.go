// Package report renders loan documents as PDF.
package report

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayoutYAML []byte

type RGB [3]int

type TextPos struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	FontSize float64 `yaml:"font_size"`
}

type PageLayout struct {
	Orientation string `yaml:"orientation"`
	Unit        string `yaml:"unit"`
	Size        string `yaml:"size"`
}

// BlockLayout describes a label/value box: a filled rectangle with a
// vertical divider between the label and the value column.
type BlockLayout struct {
	X             float64 `yaml:"x"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	DividerOffset float64 `yaml:"divider_offset"`
	DividerInset  float64 `yaml:"divider_inset"`
	DividerWidth  float64 `yaml:"divider_width"`
	LabelPadding  float64 `yaml:"label_padding"`
	ValuePadding  float64 `yaml:"value_padding"`
	Baseline      float64 `yaml:"baseline"`
	FontSize      float64 `yaml:"font_size"`
	Fill          RGB     `yaml:"fill"`
}

type FeeBlockLayout struct {
	Height          float64 `yaml:"height"`
	LabelFontSize   float64 `yaml:"label_font_size"`
	LabelBaseline   float64 `yaml:"label_baseline"`
	LabelLineHeight float64 `yaml:"label_line_height"`
	TextFontSize    float64 `yaml:"text_font_size"`
	TextBaseline    float64 `yaml:"text_baseline"`
	TextLineHeight  float64 `yaml:"text_line_height"`
}

type SummaryLayout struct {
	Title    TextPos        `yaml:"title"`
	StartY   float64        `yaml:"start_y"`
	Gap      float64        `yaml:"gap"`
	Block    BlockLayout    `yaml:"block"`
	FeeBlock FeeBlockLayout `yaml:"fee_block"`
}

// SealLayout: the primary seal keeps its aspect ratio at PrimaryWidth, the
// secondary seal is always drawn SecondaryWidth x SecondaryHeight.
type SealLayout struct {
	PrimaryWidth    float64 `yaml:"primary_width"`
	SecondaryWidth  float64 `yaml:"secondary_width"`
	SecondaryHeight float64 `yaml:"secondary_height"`
	Spacing         float64 `yaml:"spacing"`
	RightMargin     float64 `yaml:"right_margin"`
	BottomMargin    float64 `yaml:"bottom_margin"`
	TableGap        float64 `yaml:"table_gap"`
}

type TableLayout struct {
	X            float64   `yaml:"x"`
	StartY       float64   `yaml:"start_y"`
	TopMargin    float64   `yaml:"top_margin"`
	BottomMargin float64   `yaml:"bottom_margin"`
	Widths       []float64 `yaml:"widths"`
	HeaderHeight float64   `yaml:"header_height"`
	RowHeight    float64   `yaml:"row_height"`
	FontSize     float64   `yaml:"font_size"`
	HeaderFill   RGB       `yaml:"header_fill"`
	HeaderText   RGB       `yaml:"header_text"`
	StripeFill   RGB       `yaml:"stripe_fill"`
}

type ScheduleLayout struct {
	Title           TextPos     `yaml:"title"`
	SummaryY        float64     `yaml:"summary_y"`
	SummaryX        []float64   `yaml:"summary_x"`
	SummaryFontSize float64     `yaml:"summary_font_size"`
	Table           TableLayout `yaml:"table"`
}

// Labels are the fixed strings of one locale.
type Labels struct {
	Title          string   `yaml:"title"`
	Recipient      string   `yaml:"recipient"`
	Amount         string   `yaml:"amount"`
	Term           string   `yaml:"term"`
	Rate           string   `yaml:"rate"`
	Application    string   `yaml:"application"`
	Approved       string   `yaml:"approved"`
	CurrencySuffix string   `yaml:"currency_suffix"`
	TermSuffix     string   `yaml:"term_suffix"`
	RateSuffix     string   `yaml:"rate_suffix"`
	FeeLabel       []string `yaml:"fee_label"`
	FeeLines       []string `yaml:"fee_lines"`
	ScheduleTitle  string   `yaml:"schedule_title"`
	ScheduleAmount string   `yaml:"schedule_amount"`
	ScheduleTerm   string   `yaml:"schedule_term"`
	ScheduleRate   string   `yaml:"schedule_rate"`
	Columns        []string `yaml:"columns"`
	DateFormat     string   `yaml:"date_format"`
	Filename       string   `yaml:"filename"`
	// Latin is true when every label fits the core PDF fonts.
	Latin bool       `yaml:"latin"`
	Form  FormLabels `yaml:"form"`
}

// FormLabels are the captions of the HTML input form.
type FormLabels struct {
	Title     string `yaml:"title"`
	FullName  string `yaml:"full_name"`
	Amount    string `yaml:"amount"`
	Term      string `yaml:"term"`
	Rate      string `yaml:"rate"`
	StartDate string `yaml:"start_date"`
	Submit    string `yaml:"submit"`
}

type Layout struct {
	Page     PageLayout        `yaml:"page"`
	Summary  SummaryLayout     `yaml:"summary"`
	Seals    SealLayout        `yaml:"seals"`
	Schedule ScheduleLayout    `yaml:"schedule"`
	Locales  map[string]Labels `yaml:"locales"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() (*Layout, error) {
	return ParseLayout(defaultLayoutYAML)
}

// ParseLayout decodes and checks a YAML layout description.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if n := len(l.Schedule.Table.Widths); n != 5 {
		return fmt.Errorf("layout: schedule table needs 5 column widths, got %d", n)
	}
	if len(l.Schedule.SummaryX) != 3 {
		return fmt.Errorf("layout: schedule summary needs 3 x positions, got %d", len(l.Schedule.SummaryX))
	}
	if l.Schedule.Table.RowHeight <= 0 || l.Schedule.Table.HeaderHeight <= 0 {
		return fmt.Errorf("layout: table row and header heights must be positive")
	}
	for name, labels := range l.Locales {
		if len(labels.Columns) != 5 {
			return fmt.Errorf("layout: locale %q needs 5 column headers, got %d", name, len(labels.Columns))
		}
		if labels.Filename == "" {
			return fmt.Errorf("layout: locale %q has no filename", name)
		}
	}
	return nil
}

// Labels returns the strings for locale.
func (l *Layout) Labels(locale string) (Labels, error) {
	labels, ok := l.Locales[locale]
	if !ok {
		return Labels{}, fmt.Errorf("layout: unknown locale %q", locale)
	}
	return labels, nil
}
