package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/nightledger/nightledger/internal/ledger"
	"github.com/nightledger/nightledger/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weekStart    *string
	appendTotals *string
	rate         *string
	dayHours     [7]*string // indexed by time.Weekday
}

func newSettingsModel(s *store.Store) settingsModel {
	ws, at, rate := "", "", ""
	m := settingsModel{
		store:        s,
		weekStart:    &ws,
		appendTotals: &at,
		rate:         &rate,
	}
	for i := range m.dayHours {
		v := ""
		m.dayHours[i] = &v
	}
	return m
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

// validHoursRange accepts "HH:mm-HH:mm".
func validHoursRange(v string) error {
	parts := strings.SplitN(v, "-", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected HH:mm-HH:mm, got %q", v)
	}
	if err := validClock(parts[0]); err != nil {
		return err
	}
	return validClock(parts[1])
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.weekStart = store.WeekdayName(s.store.WeekStart())
	*s.appendTotals = strconv.FormatBool(s.store.AppendTotals())
	*s.rate = strconv.FormatFloat(s.store.FallbackRate(), 'f', -1, 64)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		start, end := s.store.DefaultHours(wd)
		*s.dayHours[wd] = start + "-" + end
	}

	var weekdayOptions []huh.Option[string]
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		weekdayOptions = append(weekdayOptions, huh.NewOption(wd.String(), store.WeekdayName(wd)))
	}

	dayFields := make([]huh.Field, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		dayFields = append(dayFields,
			huh.NewInput().Title(wd.String()+" hours").Value(s.dayHours[wd]).Validate(validHoursRange))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").Options(weekdayOptions...).Value(s.weekStart),
			huh.NewSelect[string]().Title("Append totals to week note").
				Options(
					huh.NewOption("Yes", "true"),
					huh.NewOption("No", "false"),
				).Value(s.appendTotals),
			huh.NewInput().Title("Fallback hourly rate").Value(s.rate).Validate(validRate),
		).Title("General"),
		huh.NewGroup(dayFields...).Title("Default Hours"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	if wd, ok := store.ParseWeekday(*s.weekStart); ok {
		s.store.SetWeekStart(wd)
	}
	s.store.SetAppendTotals(*s.appendTotals == "true")
	if rate, err := strconv.ParseFloat(*s.rate, 64); err == nil {
		s.store.SetFallbackRate(rate)
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		parts := strings.SplitN(*s.dayHours[wd], "-", 2)
		if len(parts) == 2 {
			s.store.SetDefaultHours(wd, parts[0], parts[1])
		}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(26).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "hourly_rate":
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			return ledger.FormatCurrency(rate) + "/hour"
		}
	case "append_totals":
		if v == "true" {
			return "yes"
		}
		return "no"
	}
	return v
}
