// worddeck is a terminal dictionary: look up words, save favourites, and
// play pronunciation audio.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"worddeck/audio"
	"worddeck/config"
	"worddeck/connectivity"
	"worddeck/dict"
	"worddeck/favourites"
	"worddeck/history"
	"worddeck/kvstore"
	"worddeck/logging"
	"worddeck/term"
)

// cliArgs holds the parsed command line.
type cliArgs struct {
	word       string
	initConfig bool
	help       bool
}

func parseArgs(args []string) cliArgs {
	var c cliArgs
	for _, arg := range args {
		switch arg {
		case "--init-config", "-init-config":
			c.initConfig = true
		case "-h", "--help", "-help":
			c.help = true
		default:
			if c.word == "" {
				c.word = arg
			}
		}
	}
	return c
}

func main() {
	args := parseArgs(os.Args[1:])

	if args.help {
		printUsage()
		return
	}

	// Generate default config and exit
	if args.initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if args.word != "" {
		if err := runPrint(args.word); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`worddeck - Terminal Dictionary

Usage: worddeck [options] [word]

Options:
  --init-config     Output default config (redirect to ~/.config/worddeck/config.toml)
  -h, --help        Show this help

Examples:
  worddeck                        Open interactive mode
  worddeck serendipity            Look up a word and print it
  worddeck --init-config > ~/.config/worddeck/config.toml

Interactive keys (defaults):
  /   new search        f   save/unsave entry    p   play pronunciation
  j/k move selection    '   saved words          H   recent lookups
  q   quit`)
}

// runPrint looks a word up and prints its cards to stdout (one-shot mode).
func runPrint(word string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := dict.NewClient()
	client.SetTimeout(time.Duration(cfg.Lookup.TimeoutSeconds) * time.Second)
	client.SetUserAgent(cfg.Lookup.UserAgent)

	entries, err := client.Define(word)
	if err != nil {
		return fmt.Errorf("%s", dict.UserMessage(err))
	}
	if len(entries) == 0 {
		fmt.Printf("No definitions for %q.\n", word)
		return nil
	}

	width := 80
	if w, _, werr := term.Size(); werr == nil {
		width = w
	}

	for i, entry := range entries {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(formatEntry(entry, width, false))
	}
	return nil
}

// View identifiers for interactive mode.
const (
	viewResults = iota
	viewFavourites
	viewHistory
)

// app owns the interactive session state.
type app struct {
	cfg    *config.Config
	lg     *logging.Logger
	kv     *kvstore.Store
	favs   *favourites.Store
	hist   *history.Store
	mon    *connectivity.Monitor
	client *dict.Client
	player *audio.Player

	connID uuid.UUID
	connCh <-chan bool

	// view state
	view     int
	entries  []dict.Entry
	selected int
	lastWord string
	status   string

	typing bool
	query  string

	dirty bool
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	lg := logging.New(os.Getenv("WORDDECK_LOG_LEVEL"), "")

	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath, err = kvstore.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locating database: %w", err)
		}
	}
	kv, err := kvstore.Open(dbPath)
	if err != nil {
		return nil, err
	}

	favs, err := favourites.Load(kv)
	if err != nil {
		kv.Close()
		return nil, err
	}
	hist, err := history.Load(kv)
	if err != nil {
		kv.Close()
		return nil, err
	}

	mon := connectivity.NewMonitor(cfg.Connectivity.ProbeAddress,
		time.Duration(cfg.Connectivity.IntervalSeconds)*time.Second)
	mon.Start()

	client := dict.NewClient()
	client.SetTimeout(time.Duration(cfg.Lookup.TimeoutSeconds) * time.Second)
	client.SetUserAgent(cfg.Lookup.UserAgent)
	client.SetOnlineCheck(mon.Online)

	a := &app{
		cfg:    cfg,
		lg:     lg,
		kv:     kv,
		favs:   favs,
		hist:   hist,
		mon:    mon,
		client: client,
		typing: true,
		dirty:  true,
	}
	a.connID, a.connCh = mon.Subscribe()

	if !cfg.Audio.Disabled {
		engine, err := audio.NewSDLEngine()
		if err != nil {
			lg.Errorf("audio unavailable: %v", err)
		} else {
			a.player = audio.NewPlayer(engine)
		}
	}

	return a, nil
}

// close releases subscriptions and stores exactly once per resource.
func (a *app) close() {
	a.mon.Unsubscribe(a.connID)
	a.mon.Stop()
	if a.player != nil {
		a.player.Close()
	}
	a.kv.Close()
}

func run() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	t, err := term.New(os.Stdin)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	if err := t.EnterRawMode(); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer t.RestoreMode()
	fmt.Print(term.CursorHide)
	defer fmt.Print(term.CursorShow)

	buf := make([]byte, 1)
	for {
		if a.dirty {
			a.redraw()
			a.dirty = false
		}

		ch, ok := readInput(os.Stdin, buf)
		if !ok {
			// Read timeout: absorb async state changes, then poll again.
			a.pollAsync()
			continue
		}

		if quit := a.handleKey(ch); quit {
			return nil
		}
	}
}

// readInput polls r for a single key press. With VMIN=0/VTIME=1 a
// timed-out read reports n==0, sometimes alongside io.EOF; that means
// "no key yet", not a broken input stream.
func readInput(r io.Reader, buf []byte) (byte, bool) {
	n, _ := r.Read(buf)
	if n == 0 {
		return 0, false
	}
	return buf[0], true
}

// pollAsync reflects pending notifications from the player, favourites
// store, and connectivity monitor into the view.
func (a *app) pollAsync() {
	if a.player != nil {
		select {
		case <-a.player.Updates():
			a.dirty = true
		default:
		}
	}
	select {
	case <-a.favs.Updates():
		a.dirty = true
	default:
	}
	select {
	case online := <-a.connCh:
		if online {
			a.status = "Back online."
		} else {
			a.status = "You are offline."
		}
		a.dirty = true
	default:
	}
}

func (a *app) handleKey(ch byte) (quit bool) {
	a.dirty = true

	if a.typing {
		a.handleTypingKey(ch)
		return false
	}

	keys := a.cfg.Keybindings
	switch string(ch) {
	case keys.Quit:
		return true
	case keys.Search:
		a.typing = true
		a.query = ""
	case keys.NextEntry:
		a.moveSelection(1)
	case keys.PrevEntry:
		a.moveSelection(-1)
	case keys.ToggleFavourite:
		a.toggleFavourite()
	case keys.PlayAudio:
		a.playSelected()
	case keys.FavouritesList:
		a.view = viewFavourites
		a.selected = 0
	case keys.History:
		a.view = viewHistory
		a.selected = 0
	case "\r", "\n":
		a.activateSelection()
	}
	return false
}

func (a *app) handleTypingKey(ch byte) {
	switch ch {
	case '\r', '\n':
		a.typing = false
		if strings.TrimSpace(a.query) != "" {
			a.search(a.query)
		}
	case 27: // Esc
		a.typing = false
		a.query = ""
	case 127, 8: // Backspace
		if len(a.query) > 0 {
			a.query = a.query[:len(a.query)-1]
		}
	default:
		if ch >= 32 && ch < 127 {
			a.query += string(ch)
		}
	}
}

func (a *app) moveSelection(delta int) {
	max := 0
	switch a.view {
	case viewResults:
		max = len(a.entries)
	case viewFavourites:
		max = a.favs.Len()
	case viewHistory:
		max = a.hist.Len()
	}
	if max == 0 {
		return
	}
	a.selected += delta
	if a.selected < 0 {
		a.selected = 0
	}
	if a.selected >= max {
		a.selected = max - 1
	}
}

// search runs a lookup and replaces the result list. A failure replaces
// the results with a single user-visible message, never partial output.
func (a *app) search(word string) {
	word = strings.TrimSpace(word)
	a.lastWord = word
	a.view = viewResults
	a.selected = 0

	entries, err := a.client.Define(word)
	if err != nil {
		a.entries = nil
		a.status = dict.UserMessage(err)
		a.lg.Error("lookup failed", "word", word, "err", err)
		return
	}

	a.entries = entries
	a.status = fmt.Sprintf("%d result(s) for %q", len(entries), word)
	if err := a.hist.Add(word); err != nil {
		a.lg.Errorf("recording history: %v", err)
	}
}

func (a *app) selectedEntry() (dict.Entry, bool) {
	var list []dict.Entry
	switch a.view {
	case viewResults:
		list = a.entries
	case viewFavourites:
		list = a.favs.Sorted()
	default:
		return dict.Entry{}, false
	}
	if a.selected < 0 || a.selected >= len(list) {
		return dict.Entry{}, false
	}
	return list[a.selected], true
}

func (a *app) toggleFavourite() {
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}

	if a.view == viewFavourites {
		if _, err := a.favs.Remove(entry.Word); err != nil {
			a.lg.Errorf("removing favourite: %v", err)
			a.status = "Unable to save changes."
			return
		}
		a.moveSelection(0)
		a.status = fmt.Sprintf("Removed %q.", entry.Word)
		return
	}

	added, err := a.favs.Toggle(entry)
	if err != nil {
		a.lg.Errorf("saving favourite: %v", err)
		a.status = "Unable to save changes."
		return
	}
	if added {
		a.status = fmt.Sprintf("Saved %q.", entry.Word)
	} else {
		a.status = fmt.Sprintf("Removed %q.", entry.Word)
	}
}

// playSelected toggles pronunciation audio for the selected entry. A
// playback failure is a transient notice, never fatal.
func (a *app) playSelected() {
	if a.player == nil {
		a.status = "Audio is disabled."
		return
	}
	entry, ok := a.selectedEntry()
	if !ok {
		return
	}
	url, ok := audio.FirstPlayable(entry)
	if !ok {
		a.status = "No pronunciation audio for this entry."
		return
	}
	if err := a.player.Toggle(url); err != nil {
		a.lg.Error("playback failed", "url", url, "err", err)
		a.status = "Unable to play audio"
	}
}

// activateSelection opens the selected favourite or re-runs the selected
// history lookup.
func (a *app) activateSelection() {
	switch a.view {
	case viewFavourites:
		entries := a.favs.Sorted()
		if a.selected < len(entries) {
			a.entries = []dict.Entry{entries[a.selected]}
			a.lastWord = entries[a.selected].Word
			a.view = viewResults
			a.selected = 0
			a.status = ""
		}
	case viewHistory:
		words := a.hist.Words()
		if a.selected < len(words) {
			a.search(words[a.selected])
		}
	}
}

func (a *app) redraw() {
	width := 80
	if w, _, err := term.Size(); err == nil {
		width = w
	}

	var b strings.Builder
	b.WriteString(term.ClearScreen + term.CursorHome)

	// Input line
	if a.typing {
		fmt.Fprintf(&b, "Search: %s_\r\n", a.query)
	} else if a.lastWord != "" {
		fmt.Fprintf(&b, "worddeck - %s\r\n", a.lastWord)
	} else {
		b.WriteString("worddeck\r\n")
	}
	b.WriteString(strings.Repeat("-", min(width, 72)) + "\r\n")

	switch a.view {
	case viewResults:
		a.drawResults(&b, width)
	case viewFavourites:
		a.drawFavourites(&b)
	case viewHistory:
		a.drawHistory(&b)
	}

	b.WriteString("\r\n" + a.statusLine() + "\r\n")
	os.Stdout.WriteString(b.String())
}

func (a *app) drawResults(b *strings.Builder, width int) {
	if len(a.entries) == 0 {
		if a.lastWord == "" {
			b.WriteString("Type / to search for a word.\r\n")
		}
		return
	}
	for i, entry := range a.entries {
		marker := "  "
		if i == a.selected {
			marker = "> "
		}
		card := formatEntry(entry, width-2, a.favs.IsFavourite(entry.Word))
		for j, line := range strings.Split(strings.TrimRight(card, "\n"), "\n") {
			if j == 0 {
				b.WriteString(marker + line + "\r\n")
			} else {
				b.WriteString("  " + line + "\r\n")
			}
		}
	}
}

func (a *app) drawFavourites(b *strings.Builder) {
	entries := a.favs.Sorted()
	fmt.Fprintf(b, "Saved words (%d)\r\n\r\n", len(entries))
	if len(entries) == 0 {
		b.WriteString("Nothing saved yet. Press f on an entry to save it.\r\n")
		return
	}
	for i, e := range entries {
		marker := "  "
		if i == a.selected {
			marker = "> "
		}
		summary := ""
		if len(e.Meanings) > 0 && len(e.Meanings[0].Definitions) > 0 {
			summary = " - " + e.Meanings[0].Definitions[0].Definition
		}
		fmt.Fprintf(b, "%s%s%s\r\n", marker, e.Word, summary)
	}
}

func (a *app) drawHistory(b *strings.Builder) {
	words := a.hist.Words()
	fmt.Fprintf(b, "Recent lookups (%d)\r\n\r\n", len(words))
	if len(words) == 0 {
		b.WriteString("No lookups yet.\r\n")
		return
	}
	for i, w := range words {
		marker := "  "
		if i == a.selected {
			marker = "> "
		}
		fmt.Fprintf(b, "%s%s\r\n", marker, w)
	}
}

func (a *app) statusLine() string {
	parts := []string{}
	if !a.mon.Online() {
		parts = append(parts, "[offline]")
	}
	if a.player != nil {
		if url, state := a.player.Current(); url != "" {
			parts = append(parts, fmt.Sprintf("[audio: %s]", state))
		}
	}
	if a.status != "" {
		parts = append(parts, a.status)
	}
	return strings.Join(parts, " ")
}

// formatEntry renders one dictionary entry as a plain-text card.
func formatEntry(entry dict.Entry, width int, fav bool) string {
	var b strings.Builder

	head := entry.Word
	if entry.Phonetic != nil {
		head += "  /" + *entry.Phonetic + "/"
	}
	if fav {
		head += "  *saved*"
	}
	b.WriteString(head + "\n")

	if entry.Origin != nil {
		b.WriteString("  Origin: " + *entry.Origin + "\n")
	}

	for _, m := range entry.Meanings {
		pos := m.PartOfSpeech
		if pos == "" {
			pos = "(unspecified)"
		}
		b.WriteString("\n  " + pos + "\n")
		for i, d := range m.Definitions {
			b.WriteString(wrapIndent(fmt.Sprintf("%d. %s", i+1, d.Definition), width, "    "))
			if d.Example != nil {
				b.WriteString(wrapIndent("\""+*d.Example+"\"", width, "       "))
			}
		}
		if len(m.Synonyms) > 0 {
			b.WriteString(wrapIndent("syn: "+strings.Join(m.Synonyms, ", "), width, "    "))
		}
		if len(m.Antonyms) > 0 {
			b.WriteString(wrapIndent("ant: "+strings.Join(m.Antonyms, ", "), width, "    "))
		}
	}

	if url, ok := audio.FirstPlayable(entry); ok {
		b.WriteString("\n  audio: " + url + "\n")
	}
	return b.String()
}

// wrapIndent word-wraps text to the given width with an indent prefix.
func wrapIndent(text string, width int, indent string) string {
	limit := width - len(indent)
	if limit < 20 {
		limit = 20
	}

	var b strings.Builder
	line := ""
	for _, word := range strings.Fields(text) {
		if line != "" && len(line)+1+len(word) > limit {
			b.WriteString(indent + line + "\n")
			line = word
			continue
		}
		if line == "" {
			line = word
		} else {
			line += " " + word
		}
	}
	if line != "" {
		b.WriteString(indent + line + "\n")
	}
	return b.String()
}
