package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/creditx/internal/credits"
	"github.com/desertthunder/creditx/internal/formatter"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/desertthunder/creditx/internal/slots"
	"github.com/desertthunder/creditx/internal/tasks"
)

const defaultTickInterval = 100 * time.Millisecond

const commandHelp = `fill <text> · add <entity> · set <index> <field> <value> · cv · guess <title>
tokens <open>|<close>|<sep> · export <path> · clear · quit`

// ModelOpts contains the dependencies of a [Model]. Sync and Editor default to plain instances over Host.
type ModelOpts struct {
	Host         *slots.MemoryHost
	Sync         *slots.Synchronizer
	Editor       *tasks.Editor
	Logger       *log.Logger
	TickInterval time.Duration
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	host         *slots.MemoryHost
	sync         *slots.Synchronizer
	editor       *tasks.Editor
	logger       *log.Logger
	tickInterval time.Duration
	width        int
	input        textinput.Model
	history      []string
	histIdx      int
	snapshot     models.CreditSequence
	pending      int
	busy         bool
	running      string
	progressChan chan tasks.ProgressUpdate
	done         chan opResult
	progress     tasks.ProgressUpdate
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Host == nil {
		opts.Host = slots.NewMemoryHost(0)
	}
	if opts.Sync == nil {
		opts.Sync = slots.New(opts.Host, slots.Options{Logger: opts.Logger})
	}
	if opts.Editor == nil {
		opts.Editor = tasks.NewEditor(tasks.EditorOpts{Logger: opts.Logger})
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "fill A & B feat. C"
	input.Focus()

	m := &Model{
		ctx:          ctx,
		host:         opts.Host,
		sync:         opts.Sync,
		editor:       opts.Editor,
		logger:       opts.Logger,
		tickInterval: opts.TickInterval,
		input:        input,
		help:         help.New(),
		keys:         newKeyMap(),
	}
	m.refresh()
	return m
}

// Init starts the cursor blink and the slot refresh tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.reset):
			m.input.Reset()
			return m, nil
		case key.Matches(msg, m.keys.prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, m.keys.next):
			m.recall(1)
			return m, nil
		case key.Matches(msg, m.keys.run):
			return m.submit()
		}

	case Msg:
		switch msg.kind {
		case MsgTick:
			m.refresh()
			return m, m.tick()
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			m.refresh()
			return m, m.waitForProgress()
		case MsgOperationDone:
			m.finish(msg.data.(opResult))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) refresh() {
	m.snapshot = m.host.Snapshot()
	m.pending = m.host.Pending()
}

func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}

	m.histIdx += step
	switch {
	case m.histIdx < 0:
		m.histIdx = 0
	case m.histIdx >= len(m.history):
		m.histIdx = len(m.history)
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	m.histIdx = len(m.history)
	m.input.Reset()

	cmd, err := parseCommand(line)
	if err != nil {
		m.setStatus("", err)
		return m, nil
	}

	if cmd.name == "quit" || cmd.name == "exit" {
		return m, tea.Quit
	}

	if m.busy {
		m.setStatus("", fmt.Errorf("%w: %s is still running", shared.ErrBusy, m.running))
		return m, nil
	}

	return m, m.start(cmd)
}

func (m *Model) start(c command) tea.Cmd {
	m.busy = true
	m.running = c.name
	m.progress = tasks.ProgressUpdate{}
	m.setStatus("", nil)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan opResult, 1)
	m.progressChan, m.done = progress, done

	m.logger.Info("running command", "name", c.name)
	go func() {
		message, err := m.execute(m.ctx, c, progress)
		close(progress)
		done <- opResult{name: c.name, message: message, err: err}
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	if progress == nil {
		return nil
	}

	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return operationDoneMsg(<-done)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) finish(r opResult) {
	m.busy = false
	m.running = ""
	m.progressChan, m.done = nil, nil
	m.refresh()

	if r.err != nil {
		m.logger.Error("command failed", "name", r.name, "error", r.err)
	}
	m.setStatus(r.message, r.err)
}

func (m *Model) setStatus(message string, err error) {
	m.status = message
	m.err = err
}

// execute runs one command against the slot list. It runs off the update loop.
func (m *Model) execute(ctx context.Context, c command, progress chan<- tasks.ProgressUpdate) (string, error) {
	switch c.name {
	case "fill":
		seq, err := m.editor.ParseAndFill(ctx, m.sync, c.text, progress)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Filled %d credits", len(seq)), nil

	case "add":
		if err := m.sync.Append(ctx, models.Credit{Entity: c.text}); err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %s", c.text), nil

	case "set":
		err := m.sync.Update(ctx, c.index, func(cr models.Credit) models.Credit {
			return cr.With(c.field, c.value)
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Set %s", c.field), nil

	case "cv":
		res, err := m.editor.AppendVoiceCredit(ctx, m.sync, progress)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Credited %s as the voice of %s", res.PerformerName, res.Character), nil

	case "guess":
		ok, err := m.editor.GuessInto(ctx, m.sync, c.text, progress)
		if err != nil {
			return "", err
		}
		if !ok {
			return "No artist found in title", nil
		}
		return "Added guessed artist", nil

	case "tokens":
		if err := m.editor.ConfigureTokens(ctx, c.tokens); err != nil {
			return "", err
		}
		tokens, err := m.editor.Tokens()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Tokens: open %q close %q separator %q", tokens.Open, tokens.Close, tokens.Separator), nil

	case "export":
		seq, err := m.sync.ReadAll(ctx, 0)
		if err != nil {
			return "", err
		}
		if err := formatter.WriteExport(seq, "", c.text); err != nil {
			return "", err
		}
		return fmt.Sprintf("Exported %d credits to %s", len(seq), c.text), nil

	case "clear":
		m.host.Clear()
		return "Cleared", nil

	default:
		return "", fmt.Errorf("%w: %s", shared.ErrNotImplemented, c.name)
	}
}

// View renders the slot table, status line, prompt and help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("creditx"))
	b.WriteString("\n")
	b.WriteString(m.renderSlots())
	b.WriteString("\n\n")

	if len(m.snapshot) > 0 {
		b.WriteString(fmt.Sprintf("Preview: %s\n", credits.Format(m.snapshot)))
	}
	if m.pending > 0 {
		b.WriteString(styles.warn.Render(fmt.Sprintf("%d slots pending", m.pending)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.help.ShowAll {
		b.WriteString(styles.help.Render(commandHelp))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderSlots() string {
	if len(m.snapshot) == 0 {
		return styles.help.Render("No slots. Try: fill A & B feat. C")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.border).
		Headers("#", "Entity", "Credited As", "Join Phrase").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.header
			}
			return styles.cell
		})

	for i, c := range m.snapshot {
		join := ""
		if c.Connective != "" {
			join = strconv.Quote(c.Connective)
		}
		t.Row(strconv.Itoa(i+1), shared.Truncate(c.Entity, 40), shared.Truncate(c.DisplayName, 40), join)
	}
	return t.String()
}

func (m *Model) renderStatus() string {
	switch {
	case m.busy:
		msg := m.progress.Message
		if msg == "" {
			msg = "working..."
		}
		return styles.warn.Render(fmt.Sprintf("[%s] %s", m.running, msg))
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		return styles.ok.Render(m.status)
	default:
		return ""
	}
}
