// Command smithview is a terminal Smith chart viewer.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/smith-toolkit/pkg/smith"
	"github.com/ha1tch/smith-toolkit/pkg/smithfile"
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo  MessageType = iota // Informative, no flash
	MsgError                    // Rejected configuration changes, flash
)

// Viewer holds the chart and terminal state.
type Viewer struct {
	screen   tcell.Screen
	chart    *smith.Chart
	filename string

	// Cursor in cells, relative to the chart centre.
	cursorX, cursorY int

	message           string
	messageType       MessageType
	messageFlashStart atomic.Int64 // Unix milliseconds, 0 when idle
}

// flashDuration bounds the refresh ticker after a message is shown.
const flashDuration = 700 * time.Millisecond

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	v, err := newViewer(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()
	v.screen = screen

	v.run()

	screen.Fini()
}

// newViewer builds the chart, plotting the data file named in args if any.
func newViewer(args []string) (*Viewer, error) {
	v := &Viewer{}
	if len(args) == 0 {
		c, err := smith.New(smith.DefaultParams(), smith.WithLogger(slog.Default()))
		if err != nil {
			return nil, err
		}
		v.chart = c
		return v, nil
	}

	v.filename = args[0]
	b, err := smithfile.ReadDataFile(v.filename)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", v.filename, err)
	}
	c, err := b.Chart(smith.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", v.filename, err)
	}
	v.chart = c
	v.showMessage(fmt.Sprintf("Loaded %s", filepath.Base(v.filename)), MsgInfo)
	return v, nil
}

func (v *Viewer) run() {
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			start := v.messageFlashStart.Load()
			if start == 0 {
				continue
			}
			elapsed := time.Now().UnixMilli() - start
			if elapsed >= 0 && elapsed < flashDuration.Milliseconds() {
				v.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		case *tcell.EventInterrupt:
			// Refresh for the flash animation
		case nil:
			return
		}
	}
}

// handleKey applies one key press and reports whether to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.cursorY--
		return false
	case tcell.KeyDown:
		v.cursorY++
		return false
	case tcell.KeyLeft:
		v.cursorX--
		return false
	case tcell.KeyRight:
		v.cursorX++
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 'f':
		v.update("Fancy major grid", func(p *smith.Params) { p.Major.Fancy = !p.Major.Fancy })
	case 'F':
		v.update("Fancy minor grid", func(p *smith.Params) { p.Minor.Fancy = !p.Minor.Fancy })
	case 'm':
		v.update("Minor grid", func(p *smith.Params) { p.Minor.Enable = !p.Minor.Enable })
	case 'n':
		v.update("Normalize", func(p *smith.Params) { p.Normalize = !p.Normalize })
	case '+', '=':
		v.update("Real divisions", func(p *smith.Params) { p.Major.XDivisions++ })
	case '-':
		v.update("Real divisions", func(p *smith.Params) { p.Major.XDivisions-- })
	case 'c':
		v.cursorX, v.cursorY = 0, 0
	}
	return false
}

// handleMouse moves the cursor to the clicked cell.
func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	w, h := v.screen.Size()
	cw, ch := chartArea(w, h)
	if x >= cw || y >= ch {
		return
	}
	v.cursorX, v.cursorY = x-cw/2, y-ch/2
}

// update edits the chart configuration. Rejected edits leave the chart
// unchanged and flash the error.
func (v *Viewer) update(what string, edit func(*smith.Params)) {
	if err := v.chart.Update(edit); err != nil {
		v.showMessage(err.Error(), MsgError)
		return
	}
	v.showMessage(what+": "+v.describe(what), MsgInfo)
}

func (v *Viewer) describe(what string) string {
	p := v.chart.Params()
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	switch what {
	case "Fancy major grid":
		return onOff(p.Major.Fancy)
	case "Fancy minor grid":
		return onOff(p.Minor.Fancy)
	case "Minor grid":
		return onOff(p.Minor.Enable)
	case "Normalize":
		return onOff(p.Normalize)
	case "Real divisions":
		return fmt.Sprint(p.Major.XDivisions)
	}
	return ""
}

func (v *Viewer) showMessage(msg string, t MessageType) {
	v.message = msg
	v.messageType = t
	if t == MsgError {
		v.messageFlashStart.Store(time.Now().UnixMilli())
	} else {
		v.messageFlashStart.Store(0)
	}
}
