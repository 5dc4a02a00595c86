package popups

import (
	"strings"
	"testing"
	"time"

	"github.com/hubastard/railhud/engine/catalog"
	"github.com/hubastard/railhud/engine/colors"
)

func newActivityEnv(act *fakeActivity, cat *catalog.Catalog) (*testEnv, *ActivityWindow) {
	env := newTestEnv()
	w := NewActivityWindow(env.m, cat, act)
	env.start()
	return env, w
}

func TestActivityLayoutFillsWindow(t *testing.T) {
	_, w := newActivityEnv(&fakeActivity{}, nil)
	if got := w.Location(); got.W != 8+16*25 || got.H != 29+16*8+10 {
		t.Fatalf("location %v", got)
	}
	if w.resumeLabel.Position.W != 400/3 {
		t.Errorf("menu labels are %d wide", w.resumeLabel.Position.W)
	}
	if bottom := w.statusLabel.Position.Bottom(); bottom != w.Location().H-4 {
		t.Errorf("status line ends at %d, want %d", bottom, w.Location().H-4)
	}
	if w.scroller.Position.H != 16*6 {
		t.Errorf("message area is %d high", w.scroller.Position.H)
	}
}

func TestActivityPausingEvent(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "Arrive", Message: "Stop at the platform.", Continue: -1}}
	_, w := newActivityEnv(act, nil)

	w.Poll()
	if !w.Visible() || !act.paused {
		t.Fatalf("visible=%v paused=%v, want both", w.Visible(), act.paused)
	}
	if w.eventLabel.Text != "Event: Arrive" {
		t.Errorf("event label %q", w.eventLabel.Text)
	}
	if w.message.Text() != "Stop at the platform." {
		t.Errorf("message %q", w.message.Text())
	}
	menu := []string{w.resumeLabel.Text, w.closeLabel.Text, w.quitLabel.Text, w.statusLabel.Text}
	want := []string{"Resume", "Resume and close box", "Quit activity", "Status: Activity paused"}
	for i := range want {
		if menu[i] != want[i] {
			t.Errorf("menu[%d] got %q, want %q", i, menu[i], want[i])
		}
	}
	if w.statusLabel.Color != colors.LightSalmon {
		t.Errorf("status colour %v", w.statusLabel.Color)
	}
}

func TestActivityResumeClick(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "Arrive", Message: "Wait.", Continue: -1}}
	env, w := newActivityEnv(act, nil)
	w.Poll()

	env.click(w.Window, w.resumeLabel)
	if act.paused || act.event != nil {
		t.Fatalf("paused=%v event=%v after resume", act.paused, act.event)
	}
	if !w.Visible() {
		t.Error("resume closed the dialog")
	}
	if w.resumeLabel.Text != "Pause" || w.statusLabel.Color != colors.LightGreen {
		t.Errorf("menu %q %v", w.resumeLabel.Text, w.statusLabel.Color)
	}
	if !strings.Contains(env.logs.String(), "command=resume") {
		t.Errorf("command not logged: %s", env.logs)
	}

	env.click(w.Window, w.resumeLabel)
	if !act.paused || w.resumeLabel.Text != "Resume" {
		t.Errorf("second click: paused=%v label %q", act.paused, w.resumeLabel.Text)
	}
}

func TestActivityCloseAndQuit(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "A", Message: "m", Continue: -1}}
	env, w := newActivityEnv(act, nil)
	w.Poll()
	env.click(w.Window, w.closeLabel)
	if w.Visible() || act.paused || act.quit {
		t.Errorf("close: visible=%v paused=%v quit=%v", w.Visible(), act.paused, act.quit)
	}

	act.event = &ActivityEvent{Name: "B", Message: "m", Continue: -1}
	w.Poll()
	env.click(w.Window, w.quitLabel)
	if w.Visible() || !act.quit {
		t.Errorf("quit: visible=%v quit=%v", w.Visible(), act.quit)
	}
}

func TestActivityAutoClose(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "Pass", Message: "Keep going.", Continue: 5}}
	env, w := newActivityEnv(act, nil)
	w.Poll()
	if !w.Visible() || act.paused {
		t.Fatalf("visible=%v paused=%v", w.Visible(), act.paused)
	}
	if w.statusLabel.Text != "Status: Activity running" || w.resumeLabel.Text != "Pause" {
		t.Errorf("menu %q %q", w.statusLabel.Text, w.resumeLabel.Text)
	}

	env.frame(4 * time.Second)
	if !w.Visible() {
		t.Fatal("closed early")
	}
	env.frame(time.Second)
	if w.Visible() || act.event != nil {
		t.Errorf("visible=%v event=%v after the continue time", w.Visible(), act.event)
	}
}

func TestActivityAutoCloseWaitsWhilePaused(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "Pass", Message: "Keep going.", Continue: 1}}
	env, w := newActivityEnv(act, nil)
	w.Poll()
	w.Pause()
	env.frame(10 * time.Second)
	if !w.Visible() {
		t.Error("closed while paused")
	}
}

func TestActivityEventWithoutMessage(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "Silent", Continue: -1}}
	_, w := newActivityEnv(act, nil)
	w.Poll()
	if w.Visible() || act.event != nil || act.paused {
		t.Errorf("visible=%v event=%v paused=%v", w.Visible(), act.event, act.paused)
	}
}

func TestActivityComplete(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "End"}, complete: true}
	_, w := newActivityEnv(act, nil)
	w.Poll()
	if !w.Visible() || !act.paused {
		t.Fatalf("visible=%v paused=%v", w.Visible(), act.paused)
	}
	if !strings.Contains(w.message.Text(), "ended without success.") {
		t.Errorf("message %q", w.message.Text())
	}
	if w.quitLabel.Text != "End Activity" || w.resumeLabel.Text != "" {
		t.Errorf("menu %q %q", w.resumeLabel.Text, w.quitLabel.Text)
	}
}

func TestActivityMenuSurvivesRelayout(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "Arrive", Message: "Stop.", Continue: -1}}
	_, w := newActivityEnv(act, nil)
	w.Poll()
	old := w.statusLabel
	w.SizeTo(w.Location().W+40, w.Location().H)
	if w.statusLabel == old {
		t.Fatal("labels were not rebuilt")
	}
	if w.statusLabel.Text != "Status: Activity paused" || w.message.Text() != "Stop." {
		t.Errorf("lost menu: %q %q", w.statusLabel.Text, w.message.Text())
	}
}

func TestActivityReopen(t *testing.T) {
	act := &fakeActivity{event: &ActivityEvent{Name: "Arrive", Message: "Stop.", Continue: -1}}
	env, w := newActivityEnv(act, nil)
	w.Poll()
	env.click(w.Window, w.closeLabel)

	w.Reopen()
	if !w.Visible() || w.message.Text() != "Stop." {
		t.Fatalf("visible=%v message %q", w.Visible(), w.message.Text())
	}
	if w.resumeLabel.Text != "" || w.closeLabel.Text != "Close box" {
		t.Errorf("menu %q %q", w.resumeLabel.Text, w.closeLabel.Text)
	}
}

func TestActivityTranslated(t *testing.T) {
	cat, err := catalog.Parse([]byte(`
[messages]
"Resume" = "Reprendre"
"Event: %s" = "Événement : %s"
`))
	if err != nil {
		t.Fatal(err)
	}
	act := &fakeActivity{event: &ActivityEvent{Name: "Arrivée", Message: "Stop.", Continue: -1}}
	_, w := newActivityEnv(act, cat)
	w.Poll()
	if w.resumeLabel.Text != "Reprendre" || w.eventLabel.Text != "Événement : Arrivée" {
		t.Errorf("got %q %q", w.resumeLabel.Text, w.eventLabel.Text)
	}
}
