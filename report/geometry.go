package report

// Rect is a placement on the page in layout units.
type Rect struct {
	X, Y, W, H float64
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// SealRects places both seals so that the secondary seal's top edge sits at
// anchorY and the primary seal is vertically centred on it. Seals are right
// aligned against the page width.
func SealRects(s SealLayout, pageW, anchorY, primaryRatio float64) (primary, secondary Rect) {
	if primaryRatio <= 0 {
		primaryRatio = 1
	}
	primaryH := s.PrimaryWidth / primaryRatio

	x1 := pageW - s.PrimaryWidth - s.SecondaryWidth - s.Spacing - s.RightMargin
	x2 := x1 + s.PrimaryWidth + s.Spacing

	primary = Rect{
		X: x1,
		Y: anchorY + (s.SecondaryHeight-primaryH)/2,
		W: s.PrimaryWidth,
		H: primaryH,
	}
	secondary = Rect{
		X: x2,
		Y: anchorY,
		W: s.SecondaryWidth,
		H: s.SecondaryHeight,
	}
	return primary, secondary
}

// TitleSealAnchor anchors the seals to the bottom of the summary page.
func TitleSealAnchor(s SealLayout, pageH float64) float64 {
	return pageH - s.SecondaryHeight - s.BottomMargin
}

// TableSealAnchor anchors the seals just below the schedule table.
func TableSealAnchor(s SealLayout, tableEndY float64) float64 {
	return tableEndY + s.TableGap
}

// SealsFit reports whether seals anchored at anchorY stay above the bottom
// margin of a page of height pageH.
func SealsFit(s SealLayout, pageH, anchorY, primaryRatio float64) bool {
	primary, secondary := SealRects(s, 0, anchorY, primaryRatio)
	limit := pageH - s.BottomMargin
	return secondary.Bottom() <= limit && primary.Bottom() <= limit
}

// BlockRect returns the nth summary block rectangle (0-based) on page one.
func BlockRect(l SummaryLayout, n int) Rect {
	return Rect{
		X: l.Block.X,
		Y: l.StartY + float64(n)*l.Gap,
		W: l.Block.Width,
		H: l.Block.Height,
	}
}

// DividerX is where the vertical separator between label and value is drawn.
func DividerX(b BlockLayout) float64 {
	return b.X + b.DividerOffset
}

// ValueX is where block values start.
func ValueX(b BlockLayout) float64 {
	return DividerX(b) + b.ValuePadding
}
