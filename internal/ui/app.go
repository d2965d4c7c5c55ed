package ui

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dfell/chatmark/internal/markdown"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// App owns the screen, the transcript view, and the mode state machine.
type App struct {
	screen tcell.Screen
	quit   chan struct{}
	mode   Mode

	theme *markdown.Theme
	chat  *ChatView

	searchState   *SearchState
	searchMatches []int // message indices matching the query
	searchCursor  int   // position within searchMatches

	helpDialog    *HelpDialog
	statusMessage string

	configDir    string
	settings     *Settings
	shutdownOnce sync.Once
	quitOnce     sync.Once
}

func NewApp() *App {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Failed to get config directory: %v", err)
		configDir = "."
	}
	configDir = filepath.Join(configDir, "chatmark")

	settings, err := LoadSettings(configDir)
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		settings = DefaultSettings()
	}

	app := &App{
		quit:        make(chan struct{}),
		mode:        ModeNormal,
		helpDialog:  NewHelpDialog(),
		searchState: NewSearchState(),
		configDir:   configDir,
		settings:    settings,
	}
	app.searchState.SetMinScore(settings.SearchMinScore)
	app.theme = themeByName(settings.Theme)
	return app
}

func themeByName(name string) *markdown.Theme {
	if name == "light" {
		return markdown.Light()
	}
	return markdown.Dark()
}

// Append adds a message to the transcript before or during Run.
func (a *App) Append(msg Message) {
	a.ensureChat()
	a.chat.Append(msg)
}

func (a *App) ensureChat() {
	if a.chat == nil {
		a.chat = NewChatView(a.theme, 80)
		a.chat.OnLinkTapped = func(url string) {
			a.statusMessage = "Link tapped: " + url
		}
		a.chat.OnCodeTapped = func(code, language string) {
			if language == "" {
				language = "plain"
			}
			a.statusMessage = fmt.Sprintf("Code block tapped (%s, %d bytes)", language, len(code))
		}
	}
}

func (a *App) Run() error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	a.screen = s

	if err := s.Init(); err != nil {
		return err
	}

	defer func() {
		a.closeQuit()
		a.shutdown()
		s.Fini()
		if r := recover(); r != nil {
			log.Printf("Panic during shutdown: %v", r)
		}
	}()

	s.SetStyle(tcell.StyleDefault)
	s.EnableMouse()
	s.Clear()

	a.ensureChat()
	w, _ := s.Size()
	a.chat.SetWidth(contentWidth(w))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		if a.screen != nil {
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
		a.closeQuit()
	}()

	a.draw()
	a.handleEvents()
	return nil
}

// closeQuit closes the quit channel exactly once. Both the Run cleanup and
// the signal goroutine may reach it.
func (a *App) closeQuit() {
	a.quitOnce.Do(func() {
		close(a.quit)
	})
}

func (a *App) shutdown() {
	a.shutdownOnce.Do(func() {
		if err := SaveSettings(a.configDir, a.settings); err != nil {
			log.Printf("Failed to save settings: %v", err)
		}
	})
}

func (a *App) handleEvents() {
	for {
		select {
		case <-a.quit:
			return
		default:
		}

		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, _ := a.screen.Size()
			a.chat.SetWidth(contentWidth(w))
			a.screen.Sync()
		case *tcell.EventInterrupt:
			select {
			case <-a.quit:
				return
			default:
			}
		case *eventStreamChunk:
			switch {
			case ev.start:
				a.chat.Append(Message{Role: RoleAssistant})
			case ev.done:
				a.chat.FlushStream()
			default:
				a.chat.AppendChunk(ev.chunk)
			}
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			a.handleMouse(ev)
		}

		a.draw()
	}
}

// handleKey dispatches a key event; it reports whether the app should exit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.helpDialog.HandleKey(ev) {
		return false
	}

	if a.mode == ModeSearch {
		a.handleSearchKey(ev)
		return false
	}

	_, h := a.screen.Size()
	viewHeight := h - 1 // status line

	switch ev.Key() {
	case tcell.KeyEscape:
		a.statusMessage = ""
		a.searchMatches = nil
		a.chat.ClearHighlights()
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlF, tcell.KeyPgDn:
		a.chat.ScrollBy(viewHeight, viewHeight)
	case tcell.KeyCtrlB, tcell.KeyPgUp:
		a.chat.ScrollBy(-viewHeight, viewHeight)
	case tcell.KeyDown:
		a.chat.ScrollBy(1, viewHeight)
	case tcell.KeyUp:
		a.chat.ScrollBy(-1, viewHeight)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '?':
			a.helpDialog.Show()
		case 'j':
			a.chat.ScrollBy(1, viewHeight)
		case 'k':
			a.chat.ScrollBy(-1, viewHeight)
		case 'g':
			a.chat.ScrollToTop()
		case 'G':
			a.chat.ScrollToBottom()
		case 't':
			a.toggleTheme()
		case '/':
			a.mode = ModeSearch
			a.searchState.Clear()
		case 'n':
			a.jumpToMatch(1)
		case 'N':
			a.jumpToMatch(-1)
		}
	}
	return false
}

func (a *App) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
		a.searchState.Clear()
		a.searchMatches = nil
		a.chat.ClearHighlights()
	case tcell.KeyEnter:
		a.mode = ModeNormal
		a.runSearch()
		a.jumpToMatch(0)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.searchState.DeleteChar()
	case tcell.KeyLeft:
		a.searchState.MoveCursorLeft()
	case tcell.KeyRight:
		a.searchState.MoveCursorRight()
	case tcell.KeyCtrlA:
		a.searchState.MoveCursorStart()
	case tcell.KeyCtrlE:
		a.searchState.MoveCursorEnd()
	case tcell.KeyCtrlW:
		a.searchState.DeleteWord()
	case tcell.KeyRune:
		a.searchState.InsertChar(ev.Rune())
	}
}

func (a *App) runSearch() {
	a.searchCursor = 0
	a.searchMatches = a.chat.Search(a.searchState)
	if a.searchState.Query() == "" {
		return
	}
	a.statusMessage = fmt.Sprintf("%d message(s) match %q", len(a.searchMatches), a.searchState.Query())
}

// jumpToMatch moves the transcript to the next match in direction -1, 0, or 1.
func (a *App) jumpToMatch(direction int) {
	if len(a.searchMatches) == 0 {
		return
	}
	a.searchCursor = (a.searchCursor + direction + len(a.searchMatches)) % len(a.searchMatches)
	a.chat.ScrollToMessage(a.searchMatches[a.searchCursor])
}

func (a *App) toggleTheme() {
	if a.settings.Theme == "dark" {
		a.settings.Theme = "light"
	} else {
		a.settings.Theme = "dark"
	}
	a.theme = themeByName(a.settings.Theme)
	a.chat.SetTheme(a.theme)
	a.statusMessage = "Theme: " + a.settings.Theme
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, h := a.screen.Size()
	viewHeight := h - 1

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		a.chat.ScrollBy(-3, viewHeight)
	case ev.Buttons()&tcell.WheelDown != 0:
		a.chat.ScrollBy(3, viewHeight)
	case ev.Buttons()&tcell.Button1 != 0:
		if y < viewHeight {
			a.chat.HandleClick(x-transcriptMargin, y)
		}
	}
}

// eventStreamChunk delivers streamed message text to the event loop so all
// transcript mutation happens on one goroutine.
type eventStreamChunk struct {
	tcell.EventTime
	chunk string
	start bool
	done  bool
}

// PostStreamStart opens a new streaming assistant message on the event loop.
func (a *App) PostStreamStart() {
	a.postStream(&eventStreamChunk{start: true})
}

// PostStreamChunk hands a streamed chunk to the running event loop. Pass
// done=true after the final chunk to force the closing re-render.
func (a *App) PostStreamChunk(chunk string, done bool) {
	a.postStream(&eventStreamChunk{chunk: chunk, done: done})
}

func (a *App) postStream(ev *eventStreamChunk) {
	if a.screen == nil {
		return
	}
	ev.SetEventNow()
	if err := a.screen.PostEvent(ev); err != nil {
		log.Printf("Dropped stream chunk: %v", err)
	}
}

// transcriptMargin is the left gutter before message content.
const transcriptMargin = 1

func contentWidth(screenWidth int) int {
	return screenWidth - 2*transcriptMargin
}

func (a *App) draw() {
	w, h := a.screen.Size()
	viewHeight := h - 1

	bgStyle := tcell.StyleDefault.Foreground(a.theme.TextColor)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, y, ' ', nil, bgStyle)
		}
	}

	a.chat.Draw(a.screen, transcriptMargin, 0, viewHeight)
	a.drawStatusBar(w, h)
	a.helpDialog.Draw(a.screen)
	a.screen.Show()
}

func (a *App) drawStatusBar(w, h int) {
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, style)
	}

	if a.mode == ModeSearch {
		query := []rune(a.searchState.Query())
		pos := a.searchState.CursorPos()
		drawText(a.screen, 0, h-1, style, "/"+string(query))
		cursorX := 1 + runewidth.StringWidth(string(query[:pos]))
		if cursorX < w {
			r := ' '
			if pos < len(query) {
				r = query[pos]
			}
			a.screen.SetContent(cursorX, h-1, r, nil, style.Reverse(false))
		}
		return
	}

	status := a.statusMessage
	if status == "" {
		status = "chatmark | press ? for help"
	}
	drawText(a.screen, 0, h-1, style, runewidth.Truncate(status, w, "…"))
}

// drawText draws a string starting at (x, y) in one style.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
