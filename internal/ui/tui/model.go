package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ExportPhase represents one export pipeline phase for display.
type ExportPhase struct {
	Name   string
	Key    string
	Done   bool
	Active bool
	Err    error
}

// Conflict is a dependency collision surfaced during manifest merging.
type Conflict struct {
	Package      string
	BaseRange    string
	AdapterRange string
	Disjoint     bool
}

// Model is the Bubble Tea model for the export progress display.
type Model struct {
	ProjectName string
	NetworkID   string

	Phases    []ExportPhase
	Conflicts []Conflict

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int

	OutputPath string
	Err        error
	Done       bool
}

// NewExportModel creates a model for the export command TUI.
func NewExportModel(projectName, networkID string) Model {
	return Model{
		ProjectName: projectName,
		NetworkID:   networkID,
		StartTime:   time.Now(),
		Phases: []ExportPhase{
			{Name: "Validate Configuration", Key: "validate"},
			{Name: "Render Templates", Key: "templates"},
			{Name: "Merge Package Manifest", Key: "manifest"},
			{Name: "Write Output", Key: "write"},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case ConflictMsg:
		m.Conflicts = append(m.Conflicts, Conflict(msg))

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.OutputPath = msg.OutputPath
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Phases run in order; a later phase starting means the earlier ones finished.
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	if msg.Done {
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
	} else {
		m.Phases[idx].Active = true
	}

	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

// Outcome maps the final model state to the export result: a pipeline error
// if one arrived, ErrCanceled when the view was quit before DoneMsg, nil on
// completion.
func (m Model) Outcome() error {
	if m.Err != nil {
		return m.Err
	}
	if !m.Done {
		return ErrCanceled
	}
	return nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
