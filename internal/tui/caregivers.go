package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/nightledger/nightledger/internal/ledger"
	"github.com/nightledger/nightledger/internal/store"
)

var caregiverRoles = []string{"Nanny", "Night Nanny", "Babysitter", "Au Pair", "Other"}

type caregiversModel struct {
	store  *store.Store
	width  int
	height int

	caregivers   []store.Caregiver
	cursor       int
	showInactive bool

	formActive bool
	form       *huh.Form
	formType   string // "caregiver", "edit_caregiver"

	// Form field pointers (survive value copies)
	formName    *string
	formRole    *string
	formRate    *string
	formStart   *string
	formEnd     *string
	formPayment *string

	editingID string // caregiver ID being edited
}

func newCaregiversModel(s *store.Store) caregiversModel {
	name, role, rate := "", caregiverRoles[0], ""
	start, end, payment := "", "", ""
	return caregiversModel{
		store:       s,
		formName:    &name,
		formRole:    &role,
		formRate:    &rate,
		formStart:   &start,
		formEnd:     &end,
		formPayment: &payment,
	}
}

func (c *caregiversModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type caregiversDataMsg struct {
	caregivers []store.Caregiver
}

func (c caregiversModel) refresh() tea.Cmd {
	return func() tea.Msg {
		caregivers, _ := c.store.ListCaregivers(c.showInactive)
		return caregiversDataMsg{caregivers: caregivers}
	}
}

func (c caregiversModel) update(msg tea.Msg) (caregiversModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case caregiversDataMsg:
		c.caregivers = msg.caregivers
		if c.cursor >= len(c.caregivers) {
			c.cursor = max(0, len(c.caregivers)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.caregivers)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.New):
			return c.showNewForm()
		case key.Matches(msg, keys.Edit):
			if len(c.caregivers) > 0 {
				return c.showEditForm()
			}
		case key.Matches(msg, keys.Delete):
			if len(c.caregivers) > 0 {
				cg := c.caregivers[c.cursor]
				c.store.DeactivateCaregiver(cg.ID)
				return c, c.refresh()
			}
		case key.Matches(msg, keys.Inactive):
			c.showInactive = !c.showInactive
			return c, c.refresh()
		}
	}
	return c, nil
}

func validRate(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	return nil
}

func (c caregiversModel) formGroup() *huh.Group {
	roleOptions := make([]huh.Option[string], len(caregiverRoles))
	for i, r := range caregiverRoles {
		roleOptions[i] = huh.NewOption(r, r)
	}

	return huh.NewGroup(
		huh.NewInput().Title("Name").Value(c.formName),
		huh.NewSelect[string]().Title("Role").Options(roleOptions...).Value(c.formRole),
		huh.NewInput().Title("Hourly rate").Value(c.formRate).Validate(validRate),
		huh.NewInput().Title("Default start (HH:mm)").Value(c.formStart).Validate(validClock),
		huh.NewInput().Title("Default end (HH:mm)").Value(c.formEnd).Validate(validClock),
		huh.NewInput().Title("Payment info (optional)").Value(c.formPayment),
	)
}

func (c caregiversModel) showNewForm() (caregiversModel, tea.Cmd) {
	*c.formName = ""
	*c.formRole = caregiverRoles[0]
	*c.formRate = strconv.FormatFloat(c.store.FallbackRate(), 'f', -1, 64)
	*c.formStart, *c.formEnd = "22:00", "08:00"
	*c.formPayment = ""
	c.formType = "caregiver"

	c.form = huh.NewForm(c.formGroup()).WithShowHelp(true).WithShowErrors(true)
	c.formActive = true
	return c, c.form.Init()
}

func (c caregiversModel) showEditForm() (caregiversModel, tea.Cmd) {
	cg := c.caregivers[c.cursor]
	*c.formName = cg.Name
	*c.formRole = cg.Role
	*c.formRate = strconv.FormatFloat(cg.HourlyRate, 'f', -1, 64)
	*c.formStart = cg.DefaultStart
	*c.formEnd = cg.DefaultEnd
	*c.formPayment = cg.PaymentInfo
	c.formType = "edit_caregiver"
	c.editingID = cg.ID

	c.form = huh.NewForm(c.formGroup()).WithShowHelp(true).WithShowErrors(true)
	c.formActive = true
	return c, c.form.Init()
}

func (c caregiversModel) updateForm(msg tea.Msg) (caregiversModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		rate, _ := strconv.ParseFloat(*c.formRate, 64)
		switch c.formType {
		case "caregiver":
			if *c.formName != "" {
				c.store.CreateCaregiver(*c.formName, *c.formRole, rate, *c.formStart, *c.formEnd, *c.formPayment)
			}
		case "edit_caregiver":
			if *c.formName != "" {
				c.store.UpdateCaregiver(c.editingID, *c.formName, *c.formRole, rate, *c.formStart, *c.formEnd, *c.formPayment)
			}
		}
		return c, tea.Batch(c.refresh(), func() tea.Msg { return caregiverSavedMsg{} })
	}

	return c, cmd
}

func (c caregiversModel) view() string {
	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Caregiver")
		if c.formType == "edit_caregiver" {
			title = titleStyle.Render("Edit Caregiver")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View())
		return panelStyle.Width(c.width - 4).Render(content)
	}
	return c.renderList()
}

func (c caregiversModel) renderList() string {
	w := c.width - 4
	title := titleStyle.Render("Caregivers")
	if c.showInactive {
		title += mutedStyle.Render("  (including inactive)")
	}

	if len(c.caregivers) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No caregivers yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-24s %-12s %10s %14s", "Name", "Role", "Rate", "Default Hours"))
	rows = append(rows, header)

	for i, cg := range c.caregivers {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := cg.Name
		if !cg.Active {
			name += " (inactive)"
		}
		row := style.Render(fmt.Sprintf("%s%-24s %-12s %10s %8s–%s",
			cursor, name, cg.Role,
			ledger.FormatCurrency(cg.HourlyRate),
			cg.DefaultStart, cg.DefaultEnd,
		))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: deactivate  i: show inactive"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
