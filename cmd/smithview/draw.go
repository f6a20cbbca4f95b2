package main

import (
	"math/cmplx"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor   = tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
)

// chartArea is the part of the screen above the help and status bars.
func chartArea(w, h int) (int, int) {
	return w, h - 2
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	cv := v.drawChart(w, h)
	v.drawStatusBar(w, h, cv)
}

// drawChart rasterizes the chart and copies it to the screen.
func (v *Viewer) drawChart(w, h int) *cellCanvas {
	cw, ch := chartArea(w, h)
	cv := newCellCanvas(cw, ch, v.chart.Params().Radius)
	if err := v.chart.Draw(cv); err != nil {
		v.showMessage(err.Error(), MsgError)
	}

	for y := 0; y < cv.h; y++ {
		for x := 0; x < cv.w; x++ {
			r := cv.glyph(x, y)
			if r == ' ' {
				continue
			}
			cl := cv.at(x, y)
			cr, cg, cb := cl.color.RGB255()
			style := styleDefault.Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
			v.screen.SetContent(x, y, r, nil, style)
		}
	}

	x, y := v.cursorCell(cw, ch)
	if x >= 0 && y >= 0 && x < cw && y < ch {
		v.screen.SetContent(x, y, cv.glyph(x, y), nil, styleCursor)
	}
	return cv
}

func (v *Viewer) cursorCell(cw, ch int) (int, int) {
	return cw/2 + v.cursorX, ch/2 + v.cursorY
}

// cursorText describes the impedance under the cursor.
func (v *Viewer) cursorText(cv *cellCanvas) string {
	x, y := v.cursorCell(cv.w, cv.h)
	w := cv.toDisplay(x, y).Complex()
	if cmplx.Abs(w) > 1 {
		return "outside"
	}
	s := smith.FormatCoord(v.chart.InverseMoebius(w))
	if s == "" {
		return "outside"
	}
	if !v.chart.Normalization().Normalize {
		s += " " + v.chart.Params().OhmSymbol
	}
	return "Z = " + s
}

func (v *Viewer) drawStatusBar(w, h int, cv *cellCanvas) {
	y := h - 1

	// Background
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	fileInfo := "[No data]"
	if v.filename != "" {
		fileInfo = filepath.Base(v.filename)
	}
	v.drawString(1, y, truncate(fileInfo, 30), styleStatus)

	coord := v.cursorText(cv)
	v.drawString(w/2-runewidth.StringWidth(coord)/2, y, coord, styleStatus)

	if v.message != "" {
		style := styleMsgInfo
		if v.messageType == MsgError {
			style = styleMsgError
			if start := v.messageFlashStart.Load(); start > 0 && shouldBeInverted(time.Now().UnixMilli()-start) {
				style = style.Reverse(true)
			}
		}
		msg := truncate(v.message, w/2-2)
		v.drawString(w-runewidth.StringWidth(msg)-1, y, msg, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	v.drawString(1, y, helpString(), styleHelp)
}

// shouldBeInverted flashes twice in the first half second.
func shouldBeInverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= 500 {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func helpString() string {
	return "Arrows:Cursor  c:Centre  f/F:Fancy  m:Minor  n:Normalize  +/-:Divisions  q:Quit"
}

// truncate shortens s to maxLen display cells.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}
