package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nightledger/nightledger/internal/ledger"
	"github.com/nightledger/nightledger/internal/store"
)

// chartWeeks is how many past weeks the bar chart shows.
const chartWeeks = 8

// weekRow is one fully-computed historical week.
type weekRow struct {
	weekStart time.Time
	runs      string
	nights    int
	hours     float64
	due       float64
	shifts    []ledger.Shift
}

type historyModel struct {
	store  *store.Store
	width  int
	height int

	weeks  []weekRow
	cursor int

	chart barchart.Model
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type historyDataMsg struct {
	weeks []weekRow
}

func (m historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		shifts, _ := m.store.ListShifts(store.ShiftFilter{})
		weekStart := m.store.WeekStart()

		groups := ledger.Historical(store.ToLedger(shifts), time.Now(), weekStart)

		rates := make(map[string]float64)
		rateFor := func(id string) float64 {
			if r, ok := rates[id]; ok {
				return r
			}
			r := m.store.RateFor(id)
			rates[id] = r
			return r
		}

		weeks := make([]weekRow, 0, len(groups))
		for _, g := range groups {
			row := weekRow{weekStart: g.WeekStart, shifts: g.Shifts}
			var dates []time.Time
			for _, s := range g.Shifts {
				hours := s.BillableHours()
				row.nights++
				row.hours += hours
				row.due += hours * rateFor(s.CaregiverID)
				dates = append(dates, s.Date)
			}
			row.runs = ledger.FormatRuns(ledger.CompressDates(dates))
			weeks = append(weeks, row)
		}

		return historyDataMsg{weeks: weeks}
	}
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.weeks = msg.weeks
		if m.cursor >= len(m.weeks) {
			m.cursor = max(0, len(m.weeks)-1)
		}
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.weeks)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *historyModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	// Oldest week on the left, most recent on the right.
	recent := m.weeks
	if len(recent) > chartWeeks {
		recent = recent[:chartWeeks]
	}

	var bars []barchart.BarData
	for i := len(recent) - 1; i >= 0; i-- {
		w := recent[i]
		bars = append(bars, barchart.BarData{
			Label: w.weekStart.Format("Jan 2"),
			Values: []barchart.BarValue{{
				Name:  "hours",
				Value: w.hours,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	if len(bars) == 0 {
		bars = append(bars, barchart.BarData{
			Label:  "—",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m historyModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("History")

	if len(m.weeks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No past weeks yet."),
		)
		return panelStyle.Width(w).Render(content)
	}

	chartView := m.chart.View()
	weekList := m.renderWeekList()
	nav := mutedStyle.Render("  ↑/↓: select week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", chartView, "", weekList, "", nav,
		),
	)
}

func (m historyModel) renderWeekList() string {
	var rows []string
	for i, wk := range m.weeks {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		nightWord := "nights"
		if wk.nights == 1 {
			nightWord = "night"
		}
		header := fmt.Sprintf("%sWeek of %s — %d %s, %s, %s",
			cursor,
			wk.weekStart.Format("Jan 2, 2006"),
			wk.nights, nightWord,
			formatHours(wk.hours),
			ledger.FormatCurrency(wk.due),
		)
		rows = append(rows, style.Render(header))
		rows = append(rows, mutedStyle.Render("    "+wk.runs))

		// Expand the selected week into individual shifts.
		if i == m.cursor {
			for _, s := range wk.shifts {
				rows = append(rows, fmt.Sprintf("      %-12s %s–%s  %s",
					s.Date.Format("Mon Jan 2"),
					s.Start, s.End,
					formatHours(s.BillableHours()),
				))
			}
		}
	}
	return strings.Join(rows, "\n")
}
