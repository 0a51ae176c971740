// Package main is a small terminal host for trying the regionring
// library interactively: shift+arrows drag a selection, esc releases
// it into the history ring, and ctrl-r previews the ring.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/regionring/capture"
	"github.com/dshills/regionring/config"
	"github.com/dshills/regionring/history"
	"github.com/dshills/regionring/hook"
	"github.com/dshills/regionring/host"
	"github.com/dshills/regionring/preview"
	"github.com/dshills/regionring/region"
	"github.com/dshills/regionring/script"
)

// Version information (set via ldflags during build).
var version = "dev"

// sampleText is the demo buffer. The demo is read-only; regions are
// made by selecting spans of this text.
const sampleText = `The region ring remembers every selection you let go of.

Drag a selection with shift+arrows, then press esc to release it;
the released region lands at the front of the ring below. Repeat a
few times, ideally over different spans.

Press ctrl-r to preview the ring: the newest region is highlighted
and the cursor jumps to its point. Press p to cycle toward older
regions, n to come back toward newer ones, and enter to make the
highlighted region the live selection again. Any other key leaves
the preview and puts everything back the way it was.

Press ctrl-q to quit.`

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	cfg, err := config.FromEnv(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	a := newApp(screen, cfg)

	if cfg.Script.InitFile != "" {
		sh := script.NewHost(a.mgr, a.ring)
		defer sh.Close()
		if err := sh.LoadFile(cfg.Script.InitFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	if opts.ConfigPath != "" {
		w, err := watchConfig(opts.ConfigPath, screen)
		if err != nil {
			a.Echo("config watch: %v", err)
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	for {
		a.draw()
		switch ev := screen.PollEvent().(type) {
		case nil:
			return 0
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return 0
			}
		case *tcell.EventResize:
			screen.Sync()
		case *reloadEvent:
			a.applyReload(ev)
		}
	}
}

type options struct {
	ConfigPath string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "regionring-demo - terminal demo for the regionring library\n\n")
		fmt.Fprintf(os.Stderr, "Usage: regionring-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  arrows           move the cursor\n")
		fmt.Fprintf(os.Stderr, "  shift+arrows     drag a selection\n")
		fmt.Fprintf(os.Stderr, "  esc              release the selection, recording it\n")
		fmt.Fprintf(os.Stderr, "  ctrl-r           preview recorded regions\n")
		fmt.Fprintf(os.Stderr, "  ctrl-q           quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("regionring-demo %s\n", version)
		os.Exit(0)
	}

	return opts
}

// reloadEvent carries a configuration reload, or its failure, from the
// watcher goroutine onto the input loop.
type reloadEvent struct {
	tcell.EventTime
	cfg config.Config
	err error
}

// watchConfig starts live reload for path. Watcher callbacks run on
// the fsnotify goroutine, so results are posted onto the screen's
// event queue and applied by the input loop.
func watchConfig(path string, screen tcell.Screen) (*config.Watcher, error) {
	w, err := config.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	w.OnReload(func(cfg config.Config) {
		ev := &reloadEvent{cfg: cfg}
		ev.SetEventNow()
		_ = screen.PostEvent(ev)
	})
	w.OnError(func(err error) {
		ev := &reloadEvent{err: err}
		ev.SetEventNow()
		_ = screen.PostEvent(ev)
	})
	if err := w.Start(); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// app is the demo host. It implements host.Editor, host.Highlighter,
// and host.Messenger over a fixed text buffer rendered with tcell.
type app struct {
	screen tcell.Screen
	cfg    config.Config

	text  []rune
	lines []int

	point     region.Offset
	mark      region.Offset
	markSet   bool
	selecting bool

	highlights map[host.HighlightID][2]region.Offset

	status string

	ring *history.Ring
	rec  *capture.Recorder
	mgr  *preview.Manager
}

func newApp(screen tcell.Screen, cfg config.Config) *app {
	a := &app{
		screen:     screen,
		cfg:        cfg,
		text:       []rune(sampleText),
		highlights: make(map[host.HighlightID][2]region.Offset),
	}
	a.lines = lineStarts(a.text)
	a.ring = history.New(cfg.History.Capacity)
	a.rec = capture.NewRecorder(a, a.ring)

	popts := []preview.Option{
		preview.WithMessenger(a),
		preview.WithHint(cfg.Preview.ShowHint),
	}
	if cfg.Preview.HintText != "" {
		popts = append(popts, preview.WithHintText(cfg.Preview.HintText))
	}
	a.mgr = preview.NewManager(a, a, a.ring, popts...)

	a.mgr.EndHooks().Register("demo.status", func(ev hook.Event) {
		if ev.Accepted {
			a.Echo("re-selected %s", ev.Region)
			return
		}
		a.Echo("preview ended")
	})
	return a
}

// lineStarts returns the offset of the first rune of each line.
func lineStarts(text []rune) []int {
	starts := []int{0}
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// handleKey runs one dispatch cycle for a key event. It returns true
// when the user asked to quit the program.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	command, ok := commandName(ev)
	if !ok {
		return false
	}
	if command == "C-q" || command == "C-c" {
		return true
	}

	// Session control stays outside the capture bracket; the session's
	// own selection changes are not falling edges.
	if a.consumeSessionCommand(command) {
		return false
	}

	a.rec.Before()
	a.execute(command)
	if reg, ok := a.rec.After(); ok {
		a.Echo("recorded %s (%d in ring)", reg, a.ring.Len())
	}
	return false
}

// consumeSessionCommand routes command to the preview layer and
// reports whether it was consumed there. A foreign command ends a live
// session and then dispatches normally.
func (a *app) consumeSessionCommand(command string) bool {
	if command == "C-r" {
		if err := a.mgr.Start(); err != nil {
			a.Echo("%v", err)
		}
		return true
	}
	if a.mgr.Active() {
		return a.mgr.HandleCommand(a.previewCommand(command)) == preview.DecisionStay
	}
	return false
}

// previewCommand maps a configured key name onto its preview command;
// unmapped names pass through and end the session.
func (a *app) previewCommand(command string) string {
	switch command {
	case a.cfg.Preview.Keys.Backward:
		return preview.CommandBackward
	case a.cfg.Preview.Keys.Forward:
		return preview.CommandForward
	case a.cfg.Preview.Keys.Accept:
		return preview.CommandAccept
	}
	return command
}

// execute dispatches one document command.
func (a *app) execute(command string) {
	switch command {
	case "left":
		a.moveBy(-1, false)
	case "right":
		a.moveBy(1, false)
	case "up":
		a.moveLine(-1, false)
	case "down":
		a.moveLine(1, false)
	case "home":
		a.moveEdge(true, false)
	case "end":
		a.moveEdge(false, false)
	case "shift+left":
		a.moveBy(-1, true)
	case "shift+right":
		a.moveBy(1, true)
	case "shift+up":
		a.moveLine(-1, true)
	case "shift+down":
		a.moveLine(1, true)
	case "shift+home":
		a.moveEdge(true, true)
	case "shift+end":
		a.moveEdge(false, true)
	case "esc":
		if a.selecting {
			a.ClearSelection()
		} else {
			a.status = ""
		}
	}
}

// applyReload applies a live configuration reload on the input loop.
func (a *app) applyReload(ev *reloadEvent) {
	if ev.err != nil {
		a.Echo("config reload: %v", ev.err)
		return
	}
	a.cfg = ev.cfg
	if err := a.ring.SetCapacity(ev.cfg.History.Capacity); err != nil {
		a.Echo("config reload: %v", err)
		return
	}
	a.mgr.SetHint(ev.cfg.Preview.ShowHint)
	hint := ev.cfg.Preview.HintText
	if hint == "" {
		hint = preview.DefaultHintText
	}
	a.mgr.SetHintText(hint)
	a.Echo("config reloaded: capacity %d", ev.cfg.History.Capacity)
}

// commandName maps a key event onto a command name. Shifted arrows get
// a "shift+" prefix so selection drags are distinct commands.
func commandName(ev *tcell.EventKey) (string, bool) {
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyLeft:
		return shifted("left", shift), true
	case tcell.KeyRight:
		return shifted("right", shift), true
	case tcell.KeyUp:
		return shifted("up", shift), true
	case tcell.KeyDown:
		return shifted("down", shift), true
	case tcell.KeyHome:
		return shifted("home", shift), true
	case tcell.KeyEnd:
		return shifted("end", shift), true
	case tcell.KeyEnter:
		return "enter", true
	case tcell.KeyEscape:
		return "esc", true
	case tcell.KeyCtrlR:
		return "C-r", true
	case tcell.KeyCtrlQ:
		return "C-q", true
	case tcell.KeyCtrlC:
		return "C-c", true
	case tcell.KeyRune:
		if ev.Modifiers()&^tcell.ModShift != 0 {
			return "", false
		}
		return string(ev.Rune()), true
	}
	return "", false
}

func shifted(name string, shift bool) string {
	if shift {
		return "shift+" + name
	}
	return name
}

// moveBy moves point by delta runes.
func (a *app) moveBy(delta int, selecting bool) {
	a.beginOrDropSelection(selecting)
	a.point = a.clamp(a.point + region.Offset(delta))
}

// moveLine moves point by delta lines, keeping the column when the
// target line is long enough.
func (a *app) moveLine(delta int, selecting bool) {
	a.beginOrDropSelection(selecting)
	line, col := a.position(a.point)
	a.point = a.offsetAt(line+delta, col)
}

// moveEdge moves point to the start or end of its line.
func (a *app) moveEdge(start, selecting bool) {
	a.beginOrDropSelection(selecting)
	line, _ := a.position(a.point)
	if start {
		a.point = a.offsetAt(line, 0)
	} else {
		a.point = a.offsetAt(line, len(a.text))
	}
}

// beginOrDropSelection plants the mark on the first shifted move and
// deactivates the selection on an unshifted one.
func (a *app) beginOrDropSelection(selecting bool) {
	if !selecting {
		a.selecting = false
		return
	}
	if !a.selecting {
		a.mark = a.point
		a.markSet = true
		a.selecting = true
	}
}

// position returns the line and column containing off.
func (a *app) position(off region.Offset) (line, col int) {
	o := int(off)
	line = sort.SearchInts(a.lines, o+1) - 1
	return line, o - a.lines[line]
}

// offsetAt returns the offset of (line, col), clamping both to the
// buffer.
func (a *app) offsetAt(line, col int) region.Offset {
	if line < 0 {
		line = 0
	}
	if line >= len(a.lines) {
		line = len(a.lines) - 1
	}
	start := a.lines[line]
	end := len(a.text)
	if line+1 < len(a.lines) {
		end = a.lines[line+1] - 1
	}
	off := start + col
	if off > end {
		off = end
	}
	return region.Offset(off)
}

func (a *app) clamp(off region.Offset) region.Offset {
	if off < 0 {
		return 0
	}
	if max := region.Offset(len(a.text)); off > max {
		return max
	}
	return off
}

// host.Editor

func (a *app) SelectionActive() bool { return a.selecting }

func (a *app) Point() region.Offset { return a.point }

func (a *app) Mark() (region.Offset, bool) { return a.mark, a.markSet }

func (a *app) SetSelection(point, mark region.Offset) {
	a.point = a.clamp(point)
	a.mark = a.clamp(mark)
	a.markSet = true
	a.selecting = true
}

func (a *app) ClearSelection() { a.selecting = false }

func (a *app) MovePoint(offset region.Offset) { a.point = a.clamp(offset) }

// host.Highlighter

func (a *app) CreateHighlight(start, end region.Offset) (host.HighlightID, error) {
	id := host.HighlightID(uuid.NewString())
	a.highlights[id] = [2]region.Offset{start, end}
	return id, nil
}

func (a *app) MoveHighlight(id host.HighlightID, start, end region.Offset) error {
	if _, ok := a.highlights[id]; !ok {
		return fmt.Errorf("unknown highlight %s", id)
	}
	a.highlights[id] = [2]region.Offset{start, end}
	return nil
}

func (a *app) DeleteHighlight(id host.HighlightID) error {
	if _, ok := a.highlights[id]; !ok {
		return fmt.Errorf("unknown highlight %s", id)
	}
	delete(a.highlights, id)
	return nil
}

// host.Messenger

func (a *app) Echo(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
}

// draw renders the buffer, the live selection, any preview highlight,
// and the two status rows.
func (a *app) draw() {
	s := a.screen
	s.Clear()
	width, height := s.Size()
	textRows := height - 2
	if textRows < 0 {
		textRows = 0
	}

	selStart, selEnd := a.selectionSpan()

	x, y := 0, 0
	for i, r := range a.text {
		if r == '\n' {
			x, y = 0, y+1
			continue
		}
		if y >= textRows {
			break
		}
		if x >= width {
			x++
			continue
		}
		off := region.Offset(i)
		style := tcell.StyleDefault
		if a.highlighted(off) {
			style = style.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
		}
		if off >= selStart && off < selEnd {
			style = style.Reverse(true)
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}

	a.drawStatus(width, height)

	line, col := a.position(a.point)
	if line < textRows {
		s.ShowCursor(col, line)
	} else {
		s.HideCursor()
	}
	s.Show()
}

// selectionSpan returns the live selection as a half-open span, or an
// empty span when no selection is active.
func (a *app) selectionSpan() (region.Offset, region.Offset) {
	if !a.selecting || !a.markSet {
		return 0, 0
	}
	return region.New(a.point, a.mark).Span()
}

func (a *app) highlighted(off region.Offset) bool {
	for _, span := range a.highlights {
		if off >= span[0] && off < span[1] {
			return true
		}
	}
	return false
}

// drawStatus renders the mode/ring bar and the echo line.
func (a *app) drawStatus(width, height int) {
	if height < 2 {
		return
	}

	mode := "edit"
	if a.mgr.Active() {
		mode = fmt.Sprintf("preview %d/%d", a.mgr.Session().Cursor()+1, a.ring.Len())
	}

	entries := make([]string, 0, a.ring.Len())
	for _, reg := range a.ring.Regions() {
		entries = append(entries, reg.String())
	}
	bar := fmt.Sprintf(" %s | ring %d/%d: %s", mode, a.ring.Len(), a.ring.Cap(), strings.Join(entries, " "))

	a.putLine(height-2, bar, tcell.StyleDefault.Reverse(true), width)
	a.putLine(height-1, " "+a.status, tcell.StyleDefault, width)
}

// putLine writes one padded row of text.
func (a *app) putLine(y int, text string, style tcell.Style, width int) {
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		a.screen.SetContent(x, y, ' ', nil, style)
	}
}
