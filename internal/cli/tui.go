package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/filter"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabStyle          = lipgloss.NewStyle().Foreground(colorGray)
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore the catalog interactively",
		Long: `Explore the catalog interactively.

Switch vendors with ←/→, cycle the level and domain filters with l and d,
search with /, toggle recommended links with r and reset filters with x.
Switching vendors resets every filter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := pipeline.Load(ctx, c.pipelineOptions().Source)
			if err != nil {
				return err
			}
			build := func(v catalog.Vendor) (*graph.Graph, error) {
				return c.buildGraph(ctx, cat, v)
			}
			m, err := newBrowseModel(catalog.Vendors, catalog.Vendor(c.Config.Vendor), build)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	addLayoutFlags(cmd)
	return cmd
}

// =============================================================================
// browseModel - Interactive vendor graph explorer
// =============================================================================

// graphBuilder assembles the full graph of one vendor.
type graphBuilder func(catalog.Vendor) (*graph.Graph, error)

// browseModel is the bubbletea model for the browse command. Each vendor's
// graph is built once and its filtered views are memoized.
type browseModel struct {
	build   graphBuilder
	memos   map[catalog.Vendor]*filter.Memo
	vendors []catalog.Vendor

	vendorIdx int
	state     filter.State
	choices   filter.Choices
	levelIdx  int
	domainIdx int
	typing    bool

	visible *graph.Graph
	cursor  int
	offset  int
	height  int
	err     error
}

// newBrowseModel opens the browser on start, or on the first vendor when
// start is not listed.
func newBrowseModel(vendors []catalog.Vendor, start catalog.Vendor, build graphBuilder) (browseModel, error) {
	m := browseModel{
		build:   build,
		memos:   make(map[catalog.Vendor]*filter.Memo, len(vendors)),
		vendors: vendors,
		height:  12,
	}
	idx := 0
	for i, v := range vendors {
		if v == start {
			idx = i
		}
	}
	if err := m.selectVendor(idx); err != nil {
		return m, err
	}
	return m, nil
}

func (m *browseModel) selectVendor(i int) error {
	v := m.vendors[i]
	memo, ok := m.memos[v]
	if !ok {
		g, err := m.build(v)
		if err != nil {
			return err
		}
		memo = filter.NewMemo(g)
		m.memos[v] = memo
	}
	m.vendorIdx = i
	m.state = m.state.WithVendor(v)
	m.choices = filter.Options(memo.Graph().Certs())
	m.levelIdx, m.domainIdx = 0, 0
	m.typing = false
	m.cursor, m.offset = 0, 0
	m.refresh()
	return nil
}

// refresh recomputes the visible graph and keeps the cursor in range.
func (m *browseModel) refresh() {
	m.visible = m.memos[m.state.Vendor].Resolve(m.state)
	if n := m.visible.NodeCount(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.updateQuery(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "shift+tab":
			m.err = m.selectVendor((m.vendorIdx + len(m.vendors) - 1) % len(m.vendors))
		case "right", "tab":
			m.err = m.selectVendor((m.vendorIdx + 1) % len(m.vendors))
		case "l":
			m.levelIdx = (m.levelIdx + 1) % len(m.choices.Levels)
			m.state.Level = m.choices.Levels[m.levelIdx]
			m.refresh()
		case "d":
			m.domainIdx = (m.domainIdx + 1) % len(m.choices.Domains)
			m.state.Domain = m.choices.Domains[m.domainIdx]
			m.refresh()
		case "r":
			m.state.ShowRecommended = !m.state.ShowRecommended
			m.refresh()
		case "x":
			m.state = m.state.Reset()
			m.levelIdx, m.domainIdx = 0, 0
			m.refresh()
		case "/":
			m.typing = true
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.visible.NodeCount()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-18, 5)
	}
	return m, nil
}

func (m browseModel) updateQuery(msg tea.KeyMsg) browseModel {
	switch msg.Type {
	case tea.KeyEnter:
		m.typing = false
	case tea.KeyEsc:
		m.typing = false
		m.state.Query = ""
	case tea.KeyBackspace:
		if r := []rune(m.state.Query); len(r) > 0 {
			m.state.Query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.state.Query += " "
	case tea.KeyRunes:
		m.state.Query += string(msg.Runes)
	default:
		return m
	}
	m.refresh()
	return m
}

// selected returns the node under the cursor.
func (m browseModel) selected() (*graph.Node, bool) {
	if m.cursor >= m.visible.NodeCount() {
		return nil, false
	}
	return &m.visible.Nodes[m.cursor], true
}

func (m browseModel) View() string {
	var b strings.Builder

	tabs := make([]string, len(m.vendors))
	for i, v := range m.vendors {
		if i == m.vendorIdx {
			tabs[i] = tabActiveStyle.Render(string(v))
		} else {
			tabs[i] = tabStyle.Render(string(v))
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	query := m.state.Query
	if m.typing {
		query += "▏"
	}
	recommended := "shown"
	if !m.state.ShowRecommended {
		recommended = "hidden"
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s\n",
		listDimStyle.Render("level"), StyleValue.Render(m.state.Level),
		listDimStyle.Render("domain"), StyleValue.Render(m.state.Domain),
		listDimStyle.Render("search"), StyleHighlight.Render(query),
		listDimStyle.Render("recommended"), StyleValue.Render(recommended)))

	b.WriteString(m.renderTable())
	b.WriteString("\n")
	if n, ok := m.selected(); ok {
		b.WriteString(m.renderDetail(n))
	} else {
		b.WriteString(StyleWarning.Render("No certifications match the current filters"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	}

	entries, hits := m.memos[m.state.Vendor].Stats()
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d visible · %d edges · %d views, %d reused",
		m.visible.NodeCount(), m.memos[m.state.Vendor].Graph().NodeCount(), m.visible.EdgeCount(), entries, hits)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ vendor  ↑/↓ move  l level  d domain  / search  r recommended  x reset  q quit"))

	return b.String()
}

func (m browseModel) renderTable() string {
	end := min(m.offset+m.height, m.visible.NodeCount())

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		n := m.visible.Nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, n.ID, n.Cert.Title, n.Cert.DisplayLevel(), n.Cert.Domain})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Title", "Level", "Domain").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.offset + row
			if idx >= m.visible.NodeCount() {
				return lipgloss.NewStyle()
			}
			if idx == m.cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return levelStyle(m.visible.Nodes[idx].Cert.Level)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

func (m browseModel) renderDetail(n *graph.Node) string {
	var b strings.Builder
	c := n.Cert

	b.WriteString(StyleTitle.Render(c.Title))
	b.WriteString("\n")
	if c.Description != "" {
		b.WriteString(StyleDim.Render(c.Description))
		b.WriteString("\n")
	}

	var facts []string
	for _, f := range [][2]string{{"exam", c.Exam}, {"price", c.Price}, {"length", c.ExamLength}, {"valid", c.ValidityPeriod}} {
		if f[1] != "" {
			facts = append(facts, listDimStyle.Render(f[0])+" "+StyleValue.Render(f[1]))
		}
	}
	if len(facts) > 0 {
		b.WriteString(strings.Join(facts, "  "))
		b.WriteString("\n")
	}
	if c.URL != "" {
		b.WriteString(StyleLink.Render(c.URL))
		b.WriteString("\n")
	}

	for _, e := range m.visible.Edges {
		if e.Target != n.ID {
			continue
		}
		icon := iconRequired
		if !e.Required() {
			icon = iconOptional
		}
		line := fmt.Sprintf("%s %s %s", icon, e.Source, listDimStyle.Render(string(e.Type)))
		if e.Training != nil {
			line += "  " + listDimStyle.Render("training: "+e.Training.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
