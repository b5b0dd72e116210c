package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nightledger/nightledger/internal/export"
	"github.com/nightledger/nightledger/internal/ledger"
	"github.com/nightledger/nightledger/internal/store"
)

var exportFormats = []string{"CSV", "JSON", "Receipt (HTML)"}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	home       homeModel
	history    historyModel
	caregivers caregiversModel
	settings   settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewHome,
		home:       newHomeModel(s),
		history:    newHistoryModel(s),
		caregivers: newCaregiversModel(s),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.home.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.home.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.caregivers.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewHome
			return a, a.home.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewCaregivers
			return a, a.caregivers.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case shiftLoggedMsg:
		a.status = fmt.Sprintf("Logged %s %s–%s",
			msg.shift.Date.Format("Mon Jan 2"), msg.shift.StartTime, msg.shift.EndTime)
		return a, a.home.loadData()

	case shiftDeletedMsg:
		a.status = "Shift deleted"
		return a, nil

	case caregiverSavedMsg:
		a.status = "Caregiver saved"
		return a, a.home.loadData()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewCaregivers:
		a.caregivers, cmd = a.caregivers.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewHome:
		return a.home.formActive
	case viewCaregivers:
		return a.caregivers.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHome:
		return a.home.loadData()
	case viewHistory:
		return a.history.refresh()
	case viewCaregivers:
		return a.caregivers.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewHistory:
		content = a.history.view()
	case viewCaregivers:
		content = a.caregivers.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("nightledger")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Week summary indicator in footer
	weekInfo := ""
	if line := a.home.weekLine(); line != "" {
		weekInfo = successStyle.Render(" " + line)
	}

	left := footerStyle.Render(helpView)
	right := weekInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	if format == 2 {
		return a.exportReceipt()
	}
	return func() tea.Msg {
		shifts, err := a.store.ListShifts(store.ShiftFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		// Build caregiver lookup
		caregivers := make(map[string]*store.Caregiver)
		clist, _ := a.store.ListCaregivers(true)
		for i := range clist {
			caregivers[clist[i].ID] = &clist[i]
		}
		rate := a.store.FallbackRate()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("nightledger-export-%s.csv", dateStr))
			if err := export.ToCSV(shifts, caregivers, rate, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("nightledger-export-%s.json", dateStr))
			if err := export.ToJSON(shifts, caregivers, rate, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}

// exportReceipt renders the current week of the home view's selected
// caregiver as a printable HTML receipt.
func (a App) exportReceipt() tea.Cmd {
	cg := a.home.selectedCaregiver()
	if cg == nil {
		return func() tea.Msg {
			return statusMsg{text: "No caregiver selected", isError: true}
		}
	}
	cid := cg.ID
	provider := export.Party{Name: cg.Name, Service: cg.Role + " services"}
	rate := cg.HourlyRate

	return func() tea.Msg {
		today := ledger.Day(time.Now())
		from := ledger.StartOfWeek(today, a.store.WeekStart())

		shifts, err := a.store.ListShifts(store.ShiftFilter{CaregiverID: &cid})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		html, err := export.ReceiptHTML(shifts, rate, export.ReceiptOptions{
			Number:   time.Now().Format("20060102-1504"),
			Provider: provider,
			Client:   export.Party{Name: "Client"},
			From:     from,
			To:       today,
		})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Receipt error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		path := filepath.Join(home, fmt.Sprintf("nightledger-receipt-%s.html", today.Format("2006-01-02")))
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			return statusMsg{text: fmt.Sprintf("Receipt error: %v", err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}
