// Package tui provides terminal user interface components for patchctl
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/microtonal-studio/patchctl/internal/profile"
	"github.com/microtonal-studio/patchctl/internal/transport"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionConnect
	ActionDryRun
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Profile *profile.Profile
}

// profileItem implements list.Item for profile display
type profileItem struct {
	profile *profile.Profile
}

func (i profileItem) Title() string {
	return i.profile.Name
}

func (i profileItem) Description() string {
	desc := i.profile.Description
	if desc == "" {
		desc = "no description"
	}

	return fmt.Sprintf("%s | %d links | %s",
		desc,
		len(i.profile.Links),
		transportSummary(i.profile),
	)
}

func (i profileItem) FilterValue() string {
	return i.profile.Name
}

// transportSummary names the transports a profile touches, e.g. "seq" or
// "seq+graph".
func transportSummary(p *profile.Profile) string {
	seen := make(map[transport.Kind]bool)
	var kinds []string
	for _, link := range p.Links {
		if !seen[link.Transport] {
			seen[link.Transport] = true
			kinds = append(kinds, string(link.Transport))
		}
	}
	sort.Strings(kinds)
	return strings.Join(kinds, "+")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the profile picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new profile picker
func NewPicker(profiles []*profile.Profile) Model {
	items := make([]list.Item, len(profiles))
	for i, p := range profiles {
		items[i] = profileItem{profile: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "patchctl - Select Profile"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list: l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(profileItem); ok {
				m.result = PickerResult{
					Action:  ActionConnect,
					Profile: item.profile,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(profileItem); ok {
				m.result = PickerResult{
					Action:  ActionDryRun,
					Profile: item.profile,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Connect  [d] Dry run  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive profile picker
func RunPicker(profiles []*profile.Profile) (PickerResult, error) {
	if len(profiles) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(profiles)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive listing of the available profiles
func SimplePicker(profiles []*profile.Profile) string {
	var sb strings.Builder

	sb.WriteString("patchctl - Profiles\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(profiles) == 0 {
		sb.WriteString("No profiles found.\n")
		sb.WriteString("Define one in profiles.toml or profiles.d/\n")
		return sb.String()
	}

	for i, p := range profiles {
		desc := p.Description
		if desc == "" {
			desc = "no description"
		}
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, p.Name, transportSummary(p)))
		sb.WriteString(fmt.Sprintf("   %s | %d links\n\n", desc, len(p.Links)))
	}

	return sb.String()
}
