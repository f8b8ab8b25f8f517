package main

import (
	"fmt"
	"strings"

	"blockforge/cmd/blockforge/blockdef"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the registered blocks interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := load(flagFiles)
		if err != nil {
			return err
		}
		prog := tea.NewProgram(newBrowseModel(p, func() (*project, error) { return load(flagFiles) }), tea.WithAltScreen())
		_, err = prog.Run()
		return err
	},
}

type browseState int

const (
	browseList browseState = iota
	browseFilter
	browseDetail
)

var (
	styleFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 3).
			MarginLeft(2)
)

type browseModel struct {
	table   table.Model
	filter  textinput.Model
	project *project
	visible []blockdef.Schema
	reload  func() (*project, error)
	state   browseState
	status  string
}

func newBrowseModel(p *project, reload func() (*project, error)) browseModel {
	columns := []table.Column{
		{Title: "ID", Width: 22},
		{Title: "NAME", Width: 22},
		{Title: "KIND", Width: 12},
		{Title: "CATEGORY", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("99"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	f := textinput.New()
	f.Prompt = "/ "
	f.Placeholder = "filter by id, name, kind or category"

	m := browseModel{table: t, filter: f, project: p, reload: reload, state: browseList}
	m.applyFilter()
	return m
}

// applyFilter recomputes the visible rows from the filter text.
func (m *browseModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = nil
	for _, s := range m.project.schemas {
		if q == "" || matchesFilter(s, q) {
			m.visible = append(m.visible, s)
		}
	}
	m.table.SetRows(toRows(m.visible))
	if m.table.Cursor() >= len(m.visible) {
		m.table.SetCursor(0)
	}
}

func matchesFilter(s blockdef.Schema, q string) bool {
	for _, v := range []string{s.ID, s.Name, string(s.Kind), s.Category} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func toRows(schemas []blockdef.Schema) []table.Row {
	rows := make([]table.Row, len(schemas))
	for i, s := range schemas {
		rows[i] = table.Row{s.ID, s.Name, string(s.Kind), s.Category}
	}
	return rows
}

func (m browseModel) selected() (blockdef.Schema, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return blockdef.Schema{}, false
	}
	return m.visible[idx], true
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case browseList:
		return m.updateList(msg)
	case browseFilter:
		return m.updateFilter(msg)
	case browseDetail:
		return m.updateDetail(msg)
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if _, ok := m.selected(); ok {
				m.state = browseDetail
			}
			return m, nil
		case "/":
			m.state = browseFilter
			m.table.Blur()
			return m, m.filter.Focus()
		case "r":
			p, err := m.reload()
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.project = p
			m.status = ""
			m.applyFilter()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc":
			if key.String() == "esc" {
				m.filter.SetValue("")
				m.applyFilter()
			}
			m.state = browseList
			m.filter.Blur()
			m.table.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m browseModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "enter", "backspace":
			m.state = browseList
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	title := styleTitle.Render(strings.ToUpper(appName) + "  — " + countLabel(len(m.visible), len(m.project.schemas)))
	tableView := styleFrame.Render(m.table.View())

	switch m.state {
	case browseDetail:
		s, _ := m.selected()
		overlay := styleOverlay.Render(strings.TrimRight(describe(m.project, s), "\n"))
		help := styleHelp.Render("esc / enter  back    q  quit")
		return title + "\n" + overlay + "\n" + help

	case browseFilter:
		return title + "\n" + tableView + "\n" + m.filter.View() + "\n" +
			styleHelp.Render("enter  apply    esc  clear")

	default:
		var help string
		if len(m.visible) == 0 {
			help = styleHelp.Render("No blocks.  /  filter    r  reload    q  quit")
		} else {
			help = styleHelp.Render("↑/↓  navigate    enter  details    /  filter    r  reload    q  quit")
		}
		view := title + "\n" + tableView + "\n"
		if m.filter.Value() != "" {
			view += styleDim.Render("  filter: "+m.filter.Value()) + "\n"
		}
		if m.status != "" {
			view += styleErr.Render("  "+m.status) + "\n"
		}
		return view + help
	}
}

func countLabel(shown, total int) string {
	if shown == total {
		return pluralBlocks(total)
	}
	return fmt.Sprintf("%d of %s", shown, pluralBlocks(total))
}

func pluralBlocks(n int) string {
	if n == 1 {
		return "1 block"
	}
	return fmt.Sprintf("%d blocks", n)
}
