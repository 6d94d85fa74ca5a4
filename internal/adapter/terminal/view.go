package terminal

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"

	"github.com/gdamore/tcell/v2"
)

const (
	redrawInterval = 33 * time.Millisecond
	maxIntensity   = 2.0
	barWidth       = 30
)

// View renders the latest frame to a terminal and maps keys onto the sliders:
//
//	+ / -   double or halve the multiplier
//	] / [   move the clock one hour
//	q, Esc  quit
type View struct {
	screen   tcell.Screen
	controls ports.CycleControls

	latest atomic.Pointer[cycle.Frame]
	status atomic.Pointer[string]
}

func NewView(screen tcell.Screen, controls ports.CycleControls) *View {
	return &View{screen: screen, controls: controls}
}

func (v *View) Observe(frame cycle.Frame) {
	v.latest.Store(&frame)
}

// Run owns the screen until ctx ends or the user quits. It returns nil on quit.
func (v *View) Run(ctx context.Context) error {
	if err := v.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer v.screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Draw()
		}
	}
}

func (v *View) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// handleKey reports whether the view should keep running.
func (v *View) handleKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return false
	}
	if key != tcell.KeyRune {
		return true
	}
	switch r {
	case 'q':
		return false
	case '+', '=':
		v.scaleMultiplier(2)
	case '-':
		v.scaleMultiplier(0.5)
	case ']':
		v.shiftHour(1)
	case '[':
		v.shiftHour(-1)
	}
	return true
}

func (v *View) scaleMultiplier(factor float64) {
	f := v.latest.Load()
	if f == nil || v.controls == nil {
		return
	}
	m := f.Multiplier * factor
	if m == 0 {
		m = factor
	}
	v.report(v.controls.SetMultiplier(m), fmt.Sprintf("multiplier %.2f", m))
}

func (v *View) shiftHour(delta float64) {
	f := v.latest.Load()
	if f == nil || v.controls == nil {
		return
	}
	h := math.Floor(f.Hour) + delta
	v.report(v.controls.SetHour(h), fmt.Sprintf("hour %.2f", h))
}

func (v *View) report(err error, ok string) {
	msg := ok
	if err != nil {
		msg = err.Error()
	}
	v.status.Store(&msg)
}

// Draw paints the latest frame. Nothing is drawn before the first frame.
func (v *View) Draw() {
	f := v.latest.Load()
	if f == nil {
		return
	}
	v.screen.Clear()
	width, _ := v.screen.Size()

	plain := tcell.StyleDefault
	bold := plain.Bold(true)

	v.text(1, 1, bold, f.Clock)
	v.text(8, 1, plain, fmt.Sprintf("day %d", f.Day))
	v.text(1, 2, plain, fmt.Sprintf("%-8s %-8s %3.0f%%", f.Reading.Phase, f.Reading.Segment, f.Reading.T*100))
	v.text(1, 3, plain, fmt.Sprintf("x%.2f", f.Multiplier))

	sky := tcell.StyleDefault.Background(toTcell(f.Visual.Color))
	swatch := barWidth
	if width > 0 && swatch > width-2 {
		swatch = width - 2
	}
	for x := 0; x < swatch; x++ {
		v.screen.SetContent(1+x, 5, ' ', nil, sky)
		v.screen.SetContent(1+x, 6, ' ', nil, sky)
	}
	v.text(1, 7, plain, fmt.Sprintf("sky %s blend %.2f", f.Visual.Color.Hex(), f.Visual.Blend))

	filled := int(math.Round(clampUnit(f.Visual.Intensity/maxIntensity) * barWidth))
	sun := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for x := 0; x < barWidth; x++ {
		r := '·'
		if x < filled {
			r = '█'
		}
		v.screen.SetContent(1+x, 9, r, nil, sun)
	}
	v.text(2+barWidth, 9, plain, fmt.Sprintf("%.2f", f.Visual.Intensity))

	if s := v.status.Load(); s != nil {
		v.text(1, 11, plain.Dim(true), *s)
	}
	v.screen.Show()
}

func (v *View) text(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func toTcell(c cycle.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	return int32(math.Round(clampUnit(v) * 255))
}

func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
