package customers

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/roster/internal/customer"
	"github.com/charmbracelet/roster/internal/tui/exp/list"
	"github.com/charmbracelet/roster/internal/tui/styles"
	"github.com/charmbracelet/roster/internal/tui/util"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Screen rows of the table, below the title and search lines.
const (
	headerY = 3
	bodyY   = 4

	// measurePasses bounds how often a frame is re-laid out when row
	// measurements move the visible range.
	measurePasses = 4
)

// Customers is the searchable, sortable customer table.
type Customers interface {
	util.Model
	SetSize(width, height int) tea.Cmd
	// Searching reports whether the search input has focus.
	Searching() bool
	// Close stops pending timers. The component ignores their messages
	// afterwards.
	Close()
}

type customersCmp struct {
	*options

	width, height int
	help          help.Model
	printer       *message.Printer

	search   textinput.Model
	term     string
	debounce *util.Debouncer
	frames   *util.FrameLimiter

	engine    *customer.Engine
	sort      customer.Sort
	view      customer.View
	window    *list.Window
	virtual   *list.Virtualizer
	selection *customer.Selection
	cursor    int

	columns []column
	body    string
	closed  bool
}

type options struct {
	pageSize      int
	loadThreshold int
	overscan      int
	debounceDelay time.Duration
	frameInterval time.Duration
	rowHeight     int
	compact       bool
	onCompact     func(compact bool) tea.Cmd
	keyMap        KeyMap
}

type Option func(*options)

func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithLoadThreshold sets the distance to the end of the list, in lines,
// under which the next page is loaded.
func WithLoadThreshold(n int) Option {
	return func(o *options) {
		o.loadThreshold = n
	}
}

func WithOverscan(n int) Option {
	return func(o *options) {
		o.overscan = n
	}
}

func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounceDelay = d
	}
}

func WithFrameInterval(d time.Duration) Option {
	return func(o *options) {
		o.frameInterval = d
	}
}

func WithCompact(compact bool) Option {
	return func(o *options) {
		o.compact = compact
	}
}

// WithEstimatedRowHeight sets the height assumed for comfortable rows
// until they are rendered.
func WithEstimatedRowHeight(n int) Option {
	return func(o *options) {
		o.rowHeight = n
	}
}

// WithCompactChanged is called when the user toggles compact rows.
func WithCompactChanged(fn func(compact bool) tea.Cmd) Option {
	return func(o *options) {
		o.onCompact = fn
	}
}

func WithKeyMap(k KeyMap) Option {
	return func(o *options) {
		o.keyMap = k
	}
}

func New(d *customer.Dataset, opts ...Option) Customers {
	o := &options{
		pageSize:      list.DefaultPageSize,
		loadThreshold: list.DefaultLoadThreshold,
		overscan:      list.DefaultOverscan,
		debounceDelay: util.DefaultDebounceDelay,
		frameInterval: util.DefaultFrameInterval,
		rowHeight:     list.DefaultEstimatedSize,
		keyMap:        DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(o)
	}

	t := styles.CurrentTheme()
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search name, email or phone"
	search.SetStyles(t.S().TextInput)

	h := help.New()
	h.Styles = t.S().Help

	m := &customersCmp{
		options:   o,
		help:      h,
		printer:   message.NewPrinter(language.English),
		search:    search,
		debounce:  util.NewDebouncer(o.debounceDelay),
		frames:    util.NewFrameLimiter(o.frameInterval),
		engine:    customer.NewEngine(d),
		window:    list.NewWindow(o.pageSize, o.loadThreshold),
		selection: customer.NewSelection(),
	}
	m.virtual = list.NewVirtualizer(
		list.WithEstimate(func(int) int { return m.rowEstimate() }),
		list.WithOverscan(o.overscan),
	)
	m.sync()
	return m
}

func (m *customersCmp) Init() tea.Cmd {
	return m.frames.Schedule()
}

func (m *customersCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, m.SetSize(msg.Width, msg.Height))
	case util.DebounceMsg:
		if term, ok := m.debounce.Accept(msg); ok {
			m.term = term
			cmds = append(cmds, m.refresh())
		}
	case util.FrameMsg:
		if m.frames.Accept(msg) {
			cmds = append(cmds, m.loadMore())
		}
	case tea.MouseWheelMsg:
		delta := list.ViewportDefaultScrollSize
		if msg.Button == tea.MouseWheelUp {
			delta = -delta
		}
		if m.virtual.ScrollBy(delta) {
			cmds = append(cmds, m.frames.Schedule())
		}
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			cmds = append(cmds, m.click(msg.X, msg.Y))
		}
	case tea.KeyPressMsg:
		if m.search.Focused() {
			cmds = append(cmds, m.updateSearch(msg))
		} else {
			cmds = append(cmds, m.handleKey(msg))
		}
	default:
		if m.search.Focused() {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	m.render()
	return m, tea.Batch(cmds...)
}

func (m *customersCmp) updateSearch(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.AcceptSearch), key.Matches(msg, m.keyMap.ClearSearch):
		m.search.Blur()
		m.resize()
		return nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.debounce.Trigger(m.search.Value()))
}

func (m *customersCmp) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	displayed := m.displayed()
	switch {
	case key.Matches(msg, m.keyMap.Search):
		cmd := m.search.Focus()
		// The help line shrinks to the search bindings.
		m.resize()
		return cmd
	case key.Matches(msg, m.keyMap.ClearSearch):
		if m.search.Value() == "" && m.term == "" {
			return nil
		}
		m.search.SetValue("")
		m.debounce.Cancel()
		m.term = ""
		return m.refresh()
	case key.Matches(msg, m.keyMap.Toggle):
		if m.cursor < len(displayed) {
			m.selection.Toggle(displayed[m.cursor].ID)
		}
	case key.Matches(msg, m.keyMap.ToggleAll):
		m.selection.ToggleAll(displayed)
	case key.Matches(msg, m.keyMap.ClearSelection):
		m.selection.Clear()
	case key.Matches(msg, m.keyMap.CopyEmails):
		return m.copyEmails()
	case key.Matches(msg, m.keyMap.Compact):
		m.compact = !m.compact
		m.remeasure()
		cmds := []tea.Cmd{m.frames.Schedule()}
		if m.onCompact != nil {
			cmds = append(cmds, m.onCompact(m.compact))
		}
		return tea.Batch(cmds...)
	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	default:
		for i, b := range m.keyMap.Sort {
			if key.Matches(msg, b) && i < len(customer.SortFields) {
				return m.cycleSort(customer.SortFields[i])
			}
		}
		page := max(1, m.virtual.Viewport()/max(1, m.rowEstimate()))
		if target, ok := m.keyMap.Target(msg, m.cursor, page, len(displayed)); ok {
			return m.moveCursor(target)
		}
	}
	return nil
}

func (m *customersCmp) moveCursor(target int) tea.Cmd {
	m.cursor = target
	if m.virtual.ScrollToIndex(target) {
		return m.frames.Schedule()
	}
	if target >= m.window.Loaded()-1 {
		return m.frames.Schedule()
	}
	return nil
}

func (m *customersCmp) cycleSort(field customer.SortField) tea.Cmd {
	m.sort = m.sort.Cycle(field)
	return m.refresh()
}

func (m *customersCmp) click(x, y int) tea.Cmd {
	switch {
	case y == headerY:
		if x < prefixWidth {
			m.selection.ToggleAll(m.displayed())
			return nil
		}
		if i, ok := columnAt(m.columns, x); ok {
			return m.cycleSort(m.columns[i].field)
		}
	case y >= bodyY && y < bodyY+m.virtual.Viewport():
		index, ok := m.virtual.IndexAt(m.virtual.Offset() + y - bodyY)
		if !ok {
			return nil
		}
		if x < prefixWidth-2 {
			m.selection.Toggle(m.displayed()[index].ID)
			return nil
		}
		return m.moveCursor(index)
	}
	return nil
}

func (m *customersCmp) copyEmails() tea.Cmd {
	selected := m.selection.Selected(m.engine.Dataset())
	if len(selected) == 0 {
		return util.ReportWarn("No customers selected")
	}
	emails := make([]string, len(selected))
	for i, r := range selected {
		emails[i] = r.Email
	}
	if err := clipboard.WriteAll(strings.Join(emails, ", ")); err != nil {
		return util.ReportError(fmt.Errorf("failed to copy emails: %w", err))
	}
	return util.ReportInfo(m.printer.Sprintf("Copied %d emails", len(emails)))
}

// sync recomputes the view for the settled term and sort. A new result set
// restarts loading from the first page at the top.
func (m *customersCmp) sync() {
	m.view = m.engine.View(m.term, m.sort)
	if m.window.Sync(m.view.Generation, m.view.Len()) {
		m.virtual.SetCount(0)
		m.virtual.ScrollTo(0)
		m.cursor = 0
	}
	m.virtual.SetCount(m.window.Loaded())
}

// refresh syncs the view and checks whether the first page fills the
// viewport.
func (m *customersCmp) refresh() tea.Cmd {
	m.sync()
	return m.frames.Schedule()
}

// loadMore grows the window when the viewport is close to the end of the
// loaded rows. It keeps scheduling frames while it grows so that a tall
// viewport fills up.
func (m *customersCmp) loadMore() tea.Cmd {
	if !m.window.MaybeGrow(m.virtual.DistanceToEnd(), m.view.Len()) {
		return nil
	}
	m.virtual.SetCount(m.window.Loaded())
	slog.Debug("Loaded more customers",
		"loaded", m.window.Loaded(),
		"total", m.view.Len(),
		"generation", m.view.Generation,
	)
	return m.frames.Schedule()
}

func (m *customersCmp) displayed() []customer.Record {
	return list.Displayed(m.window, m.view.Records)
}

func (m *customersCmp) rowEstimate() int {
	if m.compact {
		return 1
	}
	return max(1, m.rowHeight)
}

// remeasure drops every measurement, keeping the loaded rows.
func (m *customersCmp) remeasure() {
	loaded := m.virtual.Count()
	m.virtual.SetCount(0)
	m.virtual.SetCount(loaded)
	m.virtual.ScrollToIndex(m.cursor)
}

func (m *customersCmp) SetSize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	m.resize()
	m.render()
	return m.frames.Schedule()
}

func (m *customersCmp) resize() {
	m.columns = layoutColumns(m.width)
	m.search.SetWidth(max(0, m.width-lipgloss.Width(m.search.Prompt)-1))
	m.virtual.SetViewport(max(0, m.height-bodyY-lipgloss.Height(m.helpView())))
	m.virtual.ScrollToIndex(m.cursor)
}

func (m *customersCmp) Searching() bool {
	return m.search.Focused()
}

func (m *customersCmp) Close() {
	m.closed = true
	m.debounce.Stop()
	m.frames.Stop()
}

// render lays out the visible rows, measuring them as they are rendered.
// Measurements can move the visible range, so layout repeats until the
// sizes settle.
func (m *customersCmp) render() {
	displayed := m.displayed()
	if len(displayed) == 0 || m.virtual.Viewport() == 0 {
		m.body = ""
		return
	}

	rendered := make(map[int]string)
	var rows []list.Row[customer.Record]
	changed := true
	for pass := 0; pass < measurePasses && changed; pass++ {
		rows = list.Rows(m.virtual, displayed)
		changed = m.renderRows(rows, rendered)
	}
	if changed {
		// Out of passes with sizes still moving: lay out once more so row
		// starts include the last measurements.
		rows = list.Rows(m.virtual, displayed)
		m.renderRows(rows, rendered)
	}

	offset, viewport := m.virtual.Offset(), m.virtual.Viewport()
	lines := make([]string, 0, viewport)
	for _, row := range rows {
		if row.End() <= offset || row.Start >= offset+viewport {
			continue
		}
		for i, line := range strings.Split(rendered[row.Index], "\n") {
			if y := row.Start + i; y >= offset && y < offset+viewport {
				lines = append(lines, line)
			}
		}
	}
	m.body = strings.Join(lines, "\n")
}

// renderRows renders the rows missing from rendered and measures them. It
// reports whether any size changed.
func (m *customersCmp) renderRows(rows []list.Row[customer.Record], rendered map[int]string) bool {
	t := styles.CurrentTheme()
	changed := false
	for _, row := range rows {
		s, ok := rendered[row.Index]
		if !ok {
			s = renderRow(t, row.Value, m.columns, rowState{
				cursor:   row.Index == m.cursor,
				selected: m.selection.Has(row.Value.ID),
				compact:  m.compact,
			})
			rendered[row.Index] = s
		}
		if row.Measure(lipgloss.Height(s)) {
			changed = true
		}
	}
	return changed
}

func (m *customersCmp) helpView() string {
	if m.search.Focused() {
		return m.help.View(searchKeyMap{m.keyMap})
	}
	return m.help.View(m.keyMap)
}

func (m *customersCmp) titleView() string {
	t := styles.CurrentTheme()
	total := m.engine.Dataset().Len()
	count := m.printer.Sprintf("%d", total)
	if m.term != "" {
		count = m.printer.Sprintf("%d of %d", m.view.Len(), total)
	}
	parts := []string{
		t.S().Title.Render("Customers"),
		t.S().Pill.Render(count),
	}
	if n := m.selection.Len(); n > 0 {
		parts = append(parts, t.S().RowSelected.Render(m.printer.Sprintf("%d selected", n)))
	}
	if !m.window.Done(m.view.Len()) {
		parts = append(parts, t.S().Subtle.Render(m.printer.Sprintf("showing %d", m.window.Loaded())))
	}
	return strings.Join(parts, " ")
}

func (m *customersCmp) emptyView() string {
	t := styles.CurrentTheme()
	if m.engine.Dataset().Len() == 0 {
		return t.S().Muted.Render("No customers yet.")
	}
	return t.S().Muted.Render(fmt.Sprintf("No customers match %q.", m.term))
}

func (m *customersCmp) View() string {
	t := styles.CurrentTheme()
	body := m.body
	if m.view.Len() == 0 {
		body = m.emptyView()
	}
	body = lipgloss.NewStyle().
		Height(m.virtual.Viewport()).
		MaxHeight(m.virtual.Viewport()).
		Render(body)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.titleView(),
		m.search.View(),
		"",
		renderHeader(t, m.columns, m.sort, m.selection.StateOf(m.displayed())),
		body,
		m.helpView(),
	)
}
