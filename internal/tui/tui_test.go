package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nightledger/nightledger/internal/ledger"
	"github.com/nightledger/nightledger/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addCaregiver(t *testing.T, s *store.Store) *store.Caregiver {
	t.Helper()
	cg, err := s.CreateCaregiver("Dana", "Night Nanny", 35, "22:00", "08:00", "")
	if err != nil {
		t.Fatalf("create caregiver: %v", err)
	}
	return cg
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	expected := []string{"Home", "History", "Caregivers", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewHome != 0 || viewHistory != 1 || viewCaregivers != 2 || viewSettings != 3 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Home model
// ============================================================

func TestHomeLogTonight(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)

	h := newHomeModel(s)
	h.caregivers = []store.Caregiver{*cg}

	msg := h.logNight(ledger.Day(time.Now()))()
	logged, ok := msg.(shiftLoggedMsg)
	if !ok {
		t.Fatalf("expected shiftLoggedMsg, got %T: %v", msg, msg)
	}
	if logged.shift.CaregiverID != cg.ID {
		t.Fatal("shift should reference selected caregiver")
	}
	if logged.shift.StartTime != "22:00" || logged.shift.EndTime != "08:00" {
		t.Fatalf("shift should use weekday default hours, got %s-%s",
			logged.shift.StartTime, logged.shift.EndTime)
	}
}

func TestHomeLogTonightTwiceRejected(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)

	h := newHomeModel(s)
	h.caregivers = []store.Caregiver{*cg}

	today := ledger.Day(time.Now())
	h.logNight(today)()

	msg := h.logNight(today)()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", msg)
	}
	if !status.isError {
		t.Fatal("second log of the same night should be an error")
	}
	if !strings.Contains(status.text, "already logged") {
		t.Fatalf("unexpected status: %q", status.text)
	}
}

func TestHomeDeleteShiftStoreError(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)

	shift, err := s.CreateShift(cg.ID, ledger.Day(time.Now()), "22:00", "08:00")
	if err != nil {
		t.Fatalf("create shift: %v", err)
	}

	h := newHomeModel(s)
	h.caregivers = []store.Caregiver{*cg}
	h.shifts = []store.Shift{*shift}

	s.Close()

	h, cmd := h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("delete on a closed store should produce a command")
	}
	status, ok := cmd().(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", cmd())
	}
	if !status.isError {
		t.Fatal("failed delete should report an error status")
	}
}

func TestHomeLogLastNightUsesThatWeekday(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)
	s.SetDefaultHours(time.Now().AddDate(0, 0, -1).Weekday(), "20:00", "06:00")

	h := newHomeModel(s)
	h.caregivers = []store.Caregiver{*cg}

	yesterday := ledger.Day(time.Now()).AddDate(0, 0, -1)
	msg := h.logNight(yesterday)()
	logged, ok := msg.(shiftLoggedMsg)
	if !ok {
		t.Fatalf("expected shiftLoggedMsg, got %T", msg)
	}
	if logged.shift.StartTime != "20:00" || logged.shift.EndTime != "06:00" {
		t.Fatalf("last night should use its own weekday defaults, got %s-%s",
			logged.shift.StartTime, logged.shift.EndTime)
	}
}

func TestHomeLogNightWithoutCaregiver(t *testing.T) {
	s := newTestStore(t)
	h := newHomeModel(s)

	msg := h.logNight(ledger.Day(time.Now()))()
	status, ok := msg.(statusMsg)
	if !ok || !status.isError {
		t.Fatal("logging with no caregivers should produce an error status")
	}
}

func TestHomeLoadData(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)
	s.CreateShift(cg.ID, time.Now(), "22:00", "08:00")

	h := newHomeModel(s)
	msg := h.loadData()()
	data, ok := msg.(homeDataMsg)
	if !ok {
		t.Fatalf("expected homeDataMsg, got %T", msg)
	}
	if len(data.caregivers) != 1 {
		t.Fatalf("expected 1 caregiver, got %d", len(data.caregivers))
	}
	if len(data.shifts) != 1 {
		t.Fatalf("expected 1 shift this week, got %d", len(data.shifts))
	}
	if data.summary.Nights != 1 {
		t.Fatalf("summary nights = %d, want 1", data.summary.Nights)
	}
	if data.summary.Due != 350 {
		t.Fatalf("summary due = %v, want 350 (10h at $35)", data.summary.Due)
	}
	if data.rate != 35 {
		t.Fatalf("rate = %v, want 35", data.rate)
	}
}

func TestHomeLoadDataEmptyStore(t *testing.T) {
	s := newTestStore(t)
	h := newHomeModel(s)

	msg := h.loadData()()
	data, ok := msg.(homeDataMsg)
	if !ok {
		t.Fatalf("expected homeDataMsg, got %T", msg)
	}
	if len(data.caregivers) != 0 || len(data.shifts) != 0 {
		t.Fatal("empty store should produce empty data")
	}
	if data.rate != 35 {
		t.Fatalf("rate should fall back to global default, got %v", data.rate)
	}
}

func TestHomeSaveShiftDuplicate(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)
	s.CreateShift(cg.ID, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), "22:00", "08:00")

	h := newHomeModel(s)
	h.caregivers = []store.Caregiver{*cg}
	*h.formDate = "2025-10-06"
	*h.formStart = "22:00"
	*h.formEnd = "08:00"

	msg := h.saveShift()()
	status, ok := msg.(statusMsg)
	if !ok || !status.isError {
		t.Fatalf("exact duplicate should be rejected, got %T: %v", msg, msg)
	}
}

func TestHomeSaveShift(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)

	h := newHomeModel(s)
	h.caregivers = []store.Caregiver{*cg}
	*h.formDate = "2025-10-06"
	*h.formStart = "21:30"
	*h.formEnd = "07:30"

	msg := h.saveShift()()
	logged, ok := msg.(shiftLoggedMsg)
	if !ok {
		t.Fatalf("expected shiftLoggedMsg, got %T: %v", msg, msg)
	}
	if logged.shift.StartTime != "21:30" {
		t.Fatalf("start = %s, want 21:30", logged.shift.StartTime)
	}
}

func TestHomeWeekLine(t *testing.T) {
	h := newHomeModel(nil)
	if h.weekLine() != "" {
		t.Fatal("empty week should have no footer line")
	}

	h.summary = ledger.Summary{Nights: 2, Hours: 20, Due: 700}
	line := h.weekLine()
	if !strings.Contains(line, "2 nights") || !strings.Contains(line, "$700.00") {
		t.Fatalf("unexpected week line: %q", line)
	}

	h.summary = ledger.Summary{Nights: 1, Hours: 10, Due: 350}
	if !strings.Contains(h.weekLine(), "1 night ") {
		t.Fatalf("singular night expected: %q", h.weekLine())
	}
}

func TestHomeSelectedCaregiver(t *testing.T) {
	h := newHomeModel(nil)
	if h.selectedCaregiver() != nil {
		t.Fatal("no caregivers means no selection")
	}

	h.caregivers = []store.Caregiver{{ID: "a", Name: "Ada"}, {ID: "b", Name: "Bea"}}
	h.caregiverIdx = 1
	if h.selectedCaregiver().Name != "Bea" {
		t.Fatal("selection should follow index")
	}

	// Stale index past the end clamps to the last caregiver.
	h.caregiverIdx = 5
	if h.selectedCaregiver().Name != "Bea" {
		t.Fatal("stale index should clamp")
	}
}

func TestValidClock(t *testing.T) {
	if err := validClock("22:00"); err != nil {
		t.Fatalf("valid clock rejected: %v", err)
	}
	if err := validClock("24:00"); err == nil {
		t.Fatal("24:00 should be rejected")
	}
	if err := validClock("bogus"); err == nil {
		t.Fatal("garbage should be rejected")
	}
}

// ============================================================
// History model
// ============================================================

func TestHistoryRefresh(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)

	// Three consecutive nights two weeks back, strictly before the
	// current week regardless of today's weekday.
	base := ledger.Day(time.Now()).AddDate(0, 0, -14)
	for i := 0; i < 3; i++ {
		_, err := s.CreateShift(cg.ID, base.AddDate(0, 0, i), "22:00", "08:00")
		if err != nil {
			t.Fatal(err)
		}
	}

	m := newHistoryModel(s)
	msg := m.refresh()()
	data, ok := msg.(historyDataMsg)
	if !ok {
		t.Fatalf("expected historyDataMsg, got %T", msg)
	}
	if len(data.weeks) == 0 {
		t.Fatal("expected at least one historical week")
	}

	var total int
	for _, wk := range data.weeks {
		total += wk.nights
		if wk.hours != float64(wk.nights)*10 {
			t.Fatalf("week hours = %v for %d nights", wk.hours, wk.nights)
		}
		if wk.due != wk.hours*35 {
			t.Fatalf("week due = %v, want hours * rate", wk.due)
		}
		if wk.runs == "" {
			t.Fatal("week runs should not be empty")
		}
	}
	if total != 3 {
		t.Fatalf("expected 3 nights across weeks, got %d", total)
	}
}

func TestHistoryExcludesCurrentWeek(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)
	s.CreateShift(cg.ID, time.Now(), "22:00", "08:00")

	m := newHistoryModel(s)
	msg := m.refresh()()
	data := msg.(historyDataMsg)
	if len(data.weeks) != 0 {
		t.Fatal("current week should not appear in history")
	}
}

func TestHistoryGroupsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)

	base := ledger.Day(time.Now())
	s.CreateShift(cg.ID, base.AddDate(0, 0, -21), "22:00", "08:00")
	s.CreateShift(cg.ID, base.AddDate(0, 0, -14), "22:00", "08:00")

	m := newHistoryModel(s)
	data := m.refresh()().(historyDataMsg)
	if len(data.weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(data.weeks))
	}
	if !data.weeks[0].weekStart.After(data.weeks[1].weekStart) {
		t.Fatal("weeks should be ordered newest first")
	}
}

// ============================================================
// Caregivers model
// ============================================================

func TestCaregiversRefresh(t *testing.T) {
	s := newTestStore(t)
	addCaregiver(t, s)

	m := newCaregiversModel(s)
	msg := m.refresh()()
	data, ok := msg.(caregiversDataMsg)
	if !ok {
		t.Fatalf("expected caregiversDataMsg, got %T", msg)
	}
	if len(data.caregivers) != 1 {
		t.Fatalf("expected 1 caregiver, got %d", len(data.caregivers))
	}
}

func TestCaregiversRefreshHidesInactive(t *testing.T) {
	s := newTestStore(t)
	cg := addCaregiver(t, s)
	s.DeactivateCaregiver(cg.ID)

	m := newCaregiversModel(s)
	data := m.refresh()().(caregiversDataMsg)
	if len(data.caregivers) != 0 {
		t.Fatal("inactive caregivers hidden by default")
	}

	m.showInactive = true
	data = m.refresh()().(caregiversDataMsg)
	if len(data.caregivers) != 1 {
		t.Fatal("inactive caregivers shown when toggled")
	}
}

func TestValidRate(t *testing.T) {
	if err := validRate("35"); err != nil {
		t.Fatalf("valid rate rejected: %v", err)
	}
	if err := validRate("42.5"); err != nil {
		t.Fatalf("valid rate rejected: %v", err)
	}
	if err := validRate("lots"); err == nil {
		t.Fatal("garbage rate should be rejected")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	msg := m.refresh()()
	data, ok := msg.(settingsDataMsg)
	if !ok {
		t.Fatalf("expected settingsDataMsg, got %T", msg)
	}
	if len(data.settings) < 10 {
		t.Fatalf("expected seeded settings, got %d", len(data.settings))
	}
}

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	*m.weekStart = "monday"
	*m.appendTotals = "false"
	*m.rate = "42.5"
	for i := range m.dayHours {
		*m.dayHours[i] = "21:00-07:00"
	}
	m.saveSettings()

	if s.WeekStart() != time.Monday {
		t.Fatal("week start not saved")
	}
	if s.AppendTotals() {
		t.Fatal("append totals not saved")
	}
	if s.FallbackRate() != 42.5 {
		t.Fatal("rate not saved")
	}
	start, end := s.DefaultHours(time.Wednesday)
	if start != "21:00" || end != "07:00" {
		t.Fatalf("default hours not saved: %s-%s", start, end)
	}
}

func TestValidHoursRange(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"22:00-08:00", true},
		{"21:00-07:00", true},
		{"22:00", false},
		{"22:00-24:00", false},
		{"late-early", false},
	}
	for _, tt := range tests {
		err := validHoursRange(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("validHoursRange(%q) err=%v, want ok=%v", tt.in, err, tt.ok)
		}
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{"hourly_rate", "35", "$35.00/hour"},
		{"append_totals", "true", "yes"},
		{"append_totals", "false", "no"},
		{"week_start", "sunday", "sunday"},
		{"default_hours_friday", "21:00-07:00", "21:00-07:00"},
	}
	for _, tt := range tests {
		got := formatSettingValue(tt.key, tt.val)
		if got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatHours(t *testing.T) {
	tests := []struct {
		h    float64
		want string
	}{
		{0, "0.00h"},
		{10, "10.00h"},
		{10.25, "10.25h"},
		{20.5, "20.50h"},
	}
	for _, tt := range tests {
		got := formatHours(tt.h)
		if got != tt.want {
			t.Errorf("formatHours(%v) = %q, want %q", tt.h, got, tt.want)
		}
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewHome {
		t.Fatal("default view should be home")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	// Test all views render without panic
	views := []viewState{viewHome, viewHistory, viewCaregivers, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooter(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	footer := app.renderFooter()
	if footer == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPickerFormats(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.exportPicking = true

	picker := app.renderExportPicker()
	for _, f := range exportFormats {
		if !strings.Contains(picker, f) {
			t.Fatalf("picker missing format %q", f)
		}
	}
}

func TestAppExportReceiptWithoutCaregiver(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	msg := app.exportReceipt()()
	status, ok := msg.(statusMsg)
	if !ok || !status.isError {
		t.Fatal("receipt export with no caregiver should error")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"due", func() string { return dueStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
