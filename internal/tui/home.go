package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/nightledger/nightledger/internal/ledger"
	"github.com/nightledger/nightledger/internal/store"
)

type noteKind int

const (
	noteNone noteKind = iota
	noteCompact
	noteWeek
	noteFull
)

type homeModel struct {
	store  *store.Store
	width  int
	height int

	caregivers   []store.Caregiver
	caregiverIdx int
	shifts       []store.Shift // selected caregiver, week to date
	summary      ledger.Summary
	weekStart    time.Weekday
	rate         float64
	cursor       int

	notePanel noteKind
	noteText  string

	formActive bool
	form       *huh.Form
	formType   string // "shift", "edit_shift"

	// Form field pointers (survive value copies)
	formDate  *string
	formStart *string
	formEnd   *string

	editingID int64 // shift ID being edited
}

func newHomeModel(s *store.Store) homeModel {
	date, start, end := "", "", ""
	return homeModel{
		store:     s,
		formDate:  &date,
		formStart: &start,
		formEnd:   &end,
	}
}

func (h homeModel) Init() tea.Cmd {
	return h.loadData()
}

func (h *homeModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h homeModel) selectedCaregiver() *store.Caregiver {
	if len(h.caregivers) == 0 {
		return nil
	}
	idx := h.caregiverIdx
	if idx >= len(h.caregivers) {
		idx = len(h.caregivers) - 1
	}
	return &h.caregivers[idx]
}

// weekLine summarizes the current week for the footer.
func (h homeModel) weekLine() string {
	if h.summary.Nights == 0 {
		return ""
	}
	night := "nights"
	if h.summary.Nights == 1 {
		night = "night"
	}
	return fmt.Sprintf("● %d %s · %s", h.summary.Nights, night, ledger.FormatCurrency(h.summary.Due))
}

type homeDataMsg struct {
	caregivers []store.Caregiver
	shifts     []store.Shift
	summary    ledger.Summary
	weekStart  time.Weekday
	rate       float64
}

func (h homeModel) loadData() tea.Cmd {
	idx := h.caregiverIdx
	return func() tea.Msg {
		caregivers, _ := h.store.ListCaregivers(false)
		weekStart := h.store.WeekStart()

		msg := homeDataMsg{caregivers: caregivers, weekStart: weekStart}
		if len(caregivers) == 0 {
			msg.rate = h.store.FallbackRate()
			return msg
		}
		if idx >= len(caregivers) {
			idx = len(caregivers) - 1
		}
		cg := caregivers[idx]

		today := ledger.Day(time.Now())
		from := ledger.StartOfWeek(today, weekStart)
		shifts, _ := h.store.ListShifts(store.ShiftFilter{
			CaregiverID: &cg.ID,
			From:        &from,
			To:          &today,
		})

		msg.shifts = shifts
		msg.rate = h.store.RateFor(cg.ID)
		msg.summary = ledger.Aggregate(store.ToLedger(shifts), msg.rate)
		return msg
	}
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case homeDataMsg:
		h.caregivers = msg.caregivers
		h.shifts = msg.shifts
		h.summary = msg.summary
		h.weekStart = msg.weekStart
		h.rate = msg.rate
		if h.caregiverIdx >= len(h.caregivers) {
			h.caregiverIdx = max(0, len(h.caregivers)-1)
		}
		if h.cursor >= len(h.shifts) {
			h.cursor = max(0, len(h.shifts)-1)
		}
		return h, nil

	case tea.KeyMsg:
		if h.notePanel != noteNone {
			if key.Matches(msg, keys.Back) {
				h.notePanel = noteNone
				h.noteText = ""
			}
			return h, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.shifts)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Left):
			if h.caregiverIdx > 0 {
				h.caregiverIdx--
				return h, h.loadData()
			}
		case key.Matches(msg, keys.Right):
			if h.caregiverIdx < len(h.caregivers)-1 {
				h.caregiverIdx++
				return h, h.loadData()
			}
		case key.Matches(msg, keys.Tonight):
			return h, h.logNight(ledger.Day(time.Now()))
		case key.Matches(msg, keys.LastNight):
			return h, h.logNight(ledger.Day(time.Now()).AddDate(0, 0, -1))
		case key.Matches(msg, keys.New):
			return h.showShiftForm()
		case key.Matches(msg, keys.Edit):
			return h.showEditForm()
		case key.Matches(msg, keys.Delete):
			if len(h.shifts) > 0 {
				if err := h.store.DeleteShift(h.shifts[h.cursor].ID); err != nil {
					return h, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
				}
				return h, tea.Batch(h.loadData(), func() tea.Msg { return shiftDeletedMsg{} })
			}
		case key.Matches(msg, keys.CompactNote):
			h.notePanel = noteCompact
			h.noteText = ledger.ComposeCompactNote(store.ToLedger(h.shifts))
		case key.Matches(msg, keys.WeekNote):
			h.notePanel = noteWeek
			opts := ledger.NoteOptions{AppendTotals: h.store.AppendTotals()}
			h.noteText = ledger.ComposeWeekNote(store.ToLedger(h.shifts), h.rate, opts)
		case key.Matches(msg, keys.FullNote):
			h.notePanel = noteFull
			h.noteText = h.composeFullNote()
		}
	}
	return h, nil
}

func (h homeModel) composeFullNote() string {
	cg := h.selectedCaregiver()
	if cg == nil {
		return ledger.ComposeFullNote(nil, h.rate)
	}
	all, _ := h.store.ListShifts(store.ShiftFilter{CaregiverID: &cg.ID})
	return ledger.ComposeFullNote(store.ToLedger(all), h.rate)
}

// logNight records a shift for the given anchor day using the weekday's
// default hours. Repeated presses on the same night are rejected.
func (h homeModel) logNight(day time.Time) tea.Cmd {
	cg := h.selectedCaregiver()
	if cg == nil {
		return func() tea.Msg {
			return statusMsg{text: "No caregivers yet. Press 3 to add one.", isError: true}
		}
	}
	cid := cg.ID
	return func() tea.Msg {
		exists, err := h.store.HasShift(cid, day)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if exists {
			return statusMsg{
				text:    fmt.Sprintf("Night of %s is already logged", day.Format("Jan 2")),
				isError: true,
			}
		}

		start, end := h.store.DefaultHours(day.Weekday())
		shift, err := h.store.CreateShift(cid, day, start, end)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return shiftLoggedMsg{shift: shift}
	}
}

func validClock(s string) error {
	_, err := ledger.ParseClock(s)
	return err
}

func (h homeModel) showShiftForm() (homeModel, tea.Cmd) {
	cg := h.selectedCaregiver()
	if cg == nil {
		return h, func() tea.Msg {
			return statusMsg{text: "No caregivers yet. Press 3 to add one.", isError: true}
		}
	}

	*h.formDate = time.Now().Format("2006-01-02")
	*h.formStart = cg.DefaultStart
	*h.formEnd = cg.DefaultEnd
	h.formType = "shift"

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(h.formDate).Validate(func(s string) error {
				_, err := time.Parse("2006-01-02", s)
				return err
			}),
			huh.NewInput().Title("Start (HH:mm)").Value(h.formStart).Validate(validClock),
			huh.NewInput().Title("End (HH:mm)").Value(h.formEnd).Validate(validClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h homeModel) showEditForm() (homeModel, tea.Cmd) {
	if len(h.shifts) == 0 {
		return h, nil
	}
	shift := h.shifts[h.cursor]
	*h.formStart = shift.StartTime
	*h.formEnd = shift.EndTime
	h.formType = "edit_shift"
	h.editingID = shift.ID

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start (HH:mm)").Value(h.formStart).Validate(validClock),
			huh.NewInput().Title("End (HH:mm)").Value(h.formEnd).Validate(validClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h homeModel) updateForm(msg tea.Msg) (homeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		switch h.formType {
		case "shift":
			return h, h.saveShift()
		case "edit_shift":
			if err := h.store.UpdateShiftTimes(h.editingID, *h.formStart, *h.formEnd); err != nil {
				return h, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
			}
			return h, tea.Batch(h.loadData(), func() tea.Msg {
				return statusMsg{text: "Shift updated"}
			})
		}
	}

	return h, cmd
}

func (h homeModel) saveShift() tea.Cmd {
	cg := h.selectedCaregiver()
	if cg == nil {
		return nil
	}
	cid := cg.ID
	date, start, end := *h.formDate, *h.formStart, *h.formEnd
	return func() tea.Msg {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Bad date: %v", err), isError: true}
		}

		all, _ := h.store.ListShifts(store.ShiftFilter{CaregiverID: &cid})
		if ledger.IsDuplicate(store.ToLedger(all), cid, day, start, end) {
			return statusMsg{text: "That shift is already logged", isError: true}
		}

		shift, err := h.store.CreateShift(cid, day, start, end)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return shiftLoggedMsg{shift: shift}
	}
}

func (h homeModel) view() string {
	if h.width < 20 {
		return "Terminal too small"
	}

	contentWidth := h.width - 4

	if h.formActive && h.form != nil {
		title := titleStyle.Render("New Shift")
		if h.formType == "edit_shift" {
			title = titleStyle.Render("Edit Shift")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", h.form.View())
		return panelStyle.Width(contentWidth).Render(content)
	}

	summaryPanel := h.renderSummaryPanel(contentWidth)

	var bottomPanel string
	if h.notePanel != noteNone {
		bottomPanel = h.renderNotePanel(contentWidth)
	} else {
		bottomPanel = h.renderShiftsPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, summaryPanel, bottomPanel)
}

func (h homeModel) renderSummaryPanel(w int) string {
	cg := h.selectedCaregiver()
	if cg == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("This Week"),
			"",
			mutedStyle.Render("No caregivers yet. Press 3 to go to Caregivers and add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	name := highlightStyle.Render(cg.DisplayName())
	if len(h.caregivers) > 1 {
		name += mutedStyle.Render(fmt.Sprintf("  (%d/%d, ←/→ to switch)", h.caregiverIdx+1, len(h.caregivers)))
	}

	weekFrom := ledger.StartOfWeek(ledger.Day(time.Now()), h.weekStart)
	weekLabel := subtitleStyle.Render("Week of " + weekFrom.Format("Jan 2"))

	due := dueStyle.Width(w - 6).Render(ledger.FormatCurrency(h.summary.Due))

	nightWord := "nights"
	if h.summary.Nights == 1 {
		nightWord = "night"
	}
	counts := fmt.Sprintf("%d %s · %s", h.summary.Nights, nightWord, formatHours(h.summary.Hours))
	if h.summary.Uniform && h.summary.Nights > 0 {
		counts += fmt.Sprintf(" · %s–%s", h.summary.Start, h.summary.End)
	}
	countsLine := lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Render(mutedStyle.Render(counts))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, name, "  ", weekLabel),
		"",
		due,
		countsLine,
	)
	return activePanelStyle.Width(w).Render(content)
}

func (h homeModel) renderShiftsPanel(w int) string {
	title := titleStyle.Render("Shifts This Week")
	if len(h.shifts) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No shifts this week. Press t to log tonight."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, s := range h.shifts {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		hours := s.Ledger().BillableHours()
		row := fmt.Sprintf("%s%-12s %s–%s  %7s  %9s",
			cursor,
			s.Date.Format("Mon Jan 2"),
			s.StartTime, s.EndTime,
			formatHours(hours),
			ledger.FormatCurrency(hours*h.rate),
		)
		rows = append(rows, style.Render(row))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  t: tonight  y: last night  n: new  e: edit  d: delete  c/w/f: notes"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h homeModel) renderNotePanel(w int) string {
	var title string
	switch h.notePanel {
	case noteCompact:
		title = titleStyle.Render("Compact Note")
	case noteWeek:
		title = titleStyle.Render("Week Note")
	case noteFull:
		title = titleStyle.Render("Full Note")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		normalItemStyle.Render(h.noteText),
		"",
		mutedStyle.Render("  esc: back"),
	)
	return activePanelStyle.Width(w).Render(content)
}
