package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"snnd/internal/backend"
	"snnd/internal/menu"
	"snnd/internal/service"
)

func newTestModel(t *testing.T) (Model, *service.Service, *backend.Simulated) {
	t.Helper()
	sim := backend.NewSimulated(0)
	svc, err := service.New(service.Options{Backend: sim, Logger: zerolog.New(io.Discard)})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	return New(svc), svc, sim
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

// moveTo presses down until the cursor is on o.
func moveTo(t *testing.T, m Model, o menu.Option) Model {
	t.Helper()
	for i := 0; i < 20; i++ {
		if m.Cursor() == o {
			return m
		}
		m = press(m, "down")
	}
	t.Fatalf("option %s not reachable, cursor at %s", o, m.Cursor())
	return m
}

func TestInitReturnsTick(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init should start polling")
	}
}

func TestNavigationBounds(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(m, "up")
	if m.Cursor() != menu.OptSpatialDenoiser {
		t.Fatalf("cursor moved above first item: %s", m.Cursor())
	}
	m = press(m, strings.Split(strings.Repeat("j,", 30), ",")[:30]...)
	if m.Cursor() != menu.OptRun {
		t.Fatalf("cursor should stop at run, got %s", m.Cursor())
	}
}

func TestSubmenuAppearsAfterSelectingClassifier(t *testing.T) {
	m, _, _ := newTestModel(t)
	if strings.Contains(m.View(), "ResNet18") {
		t.Fatalf("classifier choices should be hidden initially")
	}
	m = moveTo(t, m, menu.OptClassifier)
	m = press(m, "enter")
	if !strings.Contains(m.View(), "ResNet18") {
		t.Fatalf("classifier choices should be visible after selecting classifier")
	}
	if !m.Open() {
		t.Fatalf("menu must stay open after a toggle")
	}
}

func TestRunDisabledShowsError(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(m, "r")
	if !errors.Is(m.Err(), menu.ErrRunDisabled) {
		t.Fatalf("expected ErrRunDisabled, got %v", m.Err())
	}
	if !m.Open() {
		t.Fatalf("menu must stay open when run is rejected")
	}
}

func TestRunClosesMenuAndPollsProgress(t *testing.T) {
	m, svc, sim := newTestModel(t)
	m = moveTo(t, m, menu.OptClassifier)
	m = press(m, "enter")
	m = moveTo(t, m, menu.OptResNet18)
	m = press(m, " ", "r")
	if m.Err() != nil {
		t.Fatalf("run: %v", m.Err())
	}
	if m.Open() {
		t.Fatalf("menu should close after run")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := svc.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	sim.SetClassifierIndex(3)
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("tick should schedule the next poll")
	}
	if m.Loading() {
		t.Fatalf("spinner should be dismissed once applied")
	}
	if !strings.Contains(m.View(), "Classifier: bird") {
		t.Fatalf("expected classifier label in view:\n%s", m.View())
	}
	if svc.Config().ChangeState != "unchanged" {
		t.Fatalf("poll should acknowledge the applied change, got %s", svc.Config().ChangeState)
	}
}

func TestReopenMenu(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(m, "esc")
	if m.Open() {
		t.Fatalf("esc should close the menu")
	}
	m = press(m, "j", "m")
	if !m.Open() || m.Cursor() != menu.OptSpatialDenoiser {
		t.Fatalf("menu should reopen with navigation ignored while closed")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestMobileNetDisablesFragmentShader(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = moveTo(t, m, menu.OptClassifier)
	m = press(m, "enter")
	m = moveTo(t, m, menu.OptMobileNetV2)
	m = press(m, "enter")
	m = moveTo(t, m, menu.OptFragmentShader)
	m = press(m, "enter")
	if !errors.Is(m.Err(), menu.ErrOptionDisabled) {
		t.Fatalf("expected fragment shader to be disabled, got %v", m.Err())
	}
}
