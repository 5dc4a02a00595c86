package popups

import (
	"time"

	"github.com/hubastard/railhud/engine/catalog"
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

// ActivityEvent is an activity step with a message for the player.
type ActivityEvent struct {
	Name    string
	Message string
	// Continue is how many seconds the event stays up before it closes
	// itself. Negative pauses the simulation until the player resumes;
	// zero shows nothing.
	Continue int
}

// Activity is the simulation state the activity dialog reads and drives.
type Activity interface {
	// TriggeredEvent is the event waiting to be shown, nil when none is.
	TriggeredEvent() *ActivityEvent
	ClearTriggeredEvent()
	Complete() bool
	Successful() bool
	Paused() bool
	SetPaused(paused bool)
	// Quit ends the activity and leaves the simulation.
	Quit()
}

// activityMenu is what the dialog shows. It outlives the labels, which are
// rebuilt on every layout.
type activityMenu struct {
	event   string
	message string
	resume  string
	close   string
	quit    string
	status  string
	color   colors.Color
}

// ActivityWindow pops up activity events and lets the player pause, resume
// or quit.
type ActivityWindow struct {
	*wm.Window
	activity Activity
	cat      *catalog.Catalog

	menu      activityMenu
	popupTime time.Time
	last      *ActivityEvent

	scroller    *ui.Scrollbox
	message     *ui.TextFlow
	eventLabel  *ui.Label
	resumeLabel *ui.Label
	closeLabel  *ui.Label
	quitLabel   *ui.Label
	statusLabel *ui.Label
}

func NewActivityWindow(m *wm.Manager, cat *catalog.Catalog, act Activity) *ActivityWindow {
	w := &ActivityWindow{activity: act, cat: cat, menu: activityMenu{color: colors.LightSalmon}}
	th := m.TextHeight()
	w.Window = wm.NewWindow(m, w, wm.Options{
		Name:    "Activity",
		Caption: cat.GetString("Activity Events"),
		Width:   wm.DecorationSize.X + th*25,
		Height:  wm.DecorationSize.Y + th*8 + ui.SeparatorSize*2,
	})
	return w
}

func (w *ActivityWindow) Layout(parent *ui.Layout) *ui.Layout {
	vbox := w.Window.Layout(parent).AddLayoutVertical()
	th := vbox.TextHeight()
	{
		hbox := vbox.AddLayoutHorizontalOf(th * 6)
		w.scroller = hbox.AddLayoutScrollboxVertical(hbox.RemainingWidth())
		w.message = ui.NewTextFlow(0, 0, w.scroller.Client.RemainingWidth(), "")
		w.scroller.Client.Add(w.message)
	}
	vbox.AddHorizontalSeparator()
	{
		hbox := vbox.AddLayoutHorizontalLineOfText()
		boxWidth := hbox.RemainingWidth() / 3
		w.resumeLabel = ui.NewLabel(0, 0, boxWidth, hbox.RemainingHeight(), "", ui.AlignCenter)
		w.closeLabel = ui.NewLabel(0, 0, boxWidth, hbox.RemainingHeight(), "", ui.AlignCenter)
		w.quitLabel = ui.NewLabel(0, 0, boxWidth, hbox.RemainingHeight(), "", ui.AlignCenter)
		hbox.Add(w.resumeLabel)
		hbox.Add(w.closeLabel)
		hbox.Add(w.quitLabel)
		w.resumeLabel.OnClick(func(ui.Control, ui.Point) { w.resumeClicked() })
		w.closeLabel.OnClick(func(ui.Control, ui.Point) { w.closeClicked() })
		w.quitLabel.OnClick(func(ui.Control, ui.Point) { w.quitClicked() })
	}
	vbox.AddHorizontalSeparator()
	{
		hbox := vbox.AddLayoutHorizontalLineOfText()
		boxWidth := hbox.RemainingWidth() / 2
		w.eventLabel = ui.NewLabel(0, 0, boxWidth, hbox.RemainingHeight(), "", ui.AlignLeft)
		w.statusLabel = ui.NewLabel(0, 0, boxWidth, hbox.RemainingHeight(), "", ui.AlignLeft)
		hbox.Add(w.eventLabel)
		hbox.Add(w.statusLabel)
	}
	w.apply()
	return vbox
}

// apply copies the menu into the current labels.
func (w *ActivityWindow) apply() {
	if w.message == nil {
		return
	}
	w.message.SetText(w.menu.message)
	w.eventLabel.Text = w.menu.event
	w.resumeLabel.Text = w.menu.resume
	w.closeLabel.Text = w.menu.close
	w.quitLabel.Text = w.menu.quit
	w.statusLabel.Text = w.menu.status
	w.statusLabel.Color = w.menu.color
}

func (w *ActivityWindow) log(command string) {
	w.Owner().Logger().Info("activity command",
		"command", command,
		"event", w.menu.event,
		"after", w.Owner().Now().Sub(w.popupTime).Round(time.Millisecond))
}

func (w *ActivityWindow) resumeClicked() {
	if w.activity.Paused() {
		w.log("resume")
		w.Resume()
		return
	}
	w.log("pause")
	w.Pause()
}

func (w *ActivityWindow) closeClicked() {
	w.log("close and resume")
	w.CloseBox()
}

func (w *ActivityWindow) quitClicked() {
	w.log("quit")
	w.QuitActivity()
}

// Resume restarts the simulation and keeps the dialog open.
func (w *ActivityWindow) Resume() {
	w.activity.ClearTriggeredEvent()
	w.activity.SetPaused(false)
	w.resumeMenu()
}

func (w *ActivityWindow) Pause() {
	w.activity.SetPaused(true)
	w.resumeMenu()
}

// CloseBox hides the dialog and resumes the simulation.
func (w *ActivityWindow) CloseBox() {
	w.SetVisible(false)
	w.activity.ClearTriggeredEvent()
	w.activity.SetPaused(false)
}

func (w *ActivityWindow) QuitActivity() {
	w.CloseBox()
	w.activity.Quit()
}

// Reopen shows the last event again, with the menu matching whether the
// simulation is paused.
func (w *ActivityWindow) Reopen() {
	if w.last == nil {
		return
	}
	w.compose(w.last.Name, w.last.Message)
	if w.activity.Paused() {
		w.resumeMenu()
	} else {
		w.closeMenu()
	}
	w.popupTime = w.Owner().Now()
	w.SetVisible(true)
}

// Poll checks for a new event while the dialog is hidden; the manager only
// prepares visible windows.
func (w *ActivityWindow) Poll() {
	if !w.Visible() {
		w.PrepareFrame(0, true)
	}
}

func (w *ActivityWindow) PrepareFrame(_ time.Duration, updateFull bool) {
	if !updateFull {
		return
	}
	e := w.activity.TriggeredEvent()
	if e == nil {
		return
	}
	now := w.Owner().Now()
	if w.activity.Complete() {
		w.activity.SetPaused(true)
		outcome := ""
		if !w.activity.Successful() {
			outcome = w.cat.GetString("without success")
		}
		w.compose(e.Name, w.cat.GetStringf("This activity has ended %s.\nFor a detailed evaluation, see the Help Window (F1).", outcome))
		w.endMenu()
		w.SetVisible(true)
		return
	}
	if e.Message == "" {
		w.activity.ClearTriggeredEvent()
		return
	}
	ev := *e
	w.last = &ev
	if !w.activity.Paused() && !w.Visible() {
		w.activity.SetPaused(e.Continue < 0)
		if e.Continue != 0 {
			w.compose(e.Name, e.Message)
			if e.Continue < 0 {
				w.resumeMenu()
			} else {
				w.noPauseMenu()
			}
		}
		w.popupTime = now
	}
	w.SetVisible(true)
	if e.Continue >= 0 && !w.activity.Paused() && now.Sub(w.popupTime) >= time.Duration(e.Continue)*time.Second {
		w.CloseBox()
	}
}

func (w *ActivityWindow) resumeMenu() {
	if w.activity.Paused() {
		w.menu.resume = w.cat.GetString("Resume")
		w.menu.close = w.cat.GetString("Resume and close box")
		w.menu.status = w.cat.GetString("Status: Activity paused")
		w.menu.color = colors.LightSalmon
	} else {
		w.menu.resume = w.cat.GetString("Pause")
		w.menu.close = w.cat.GetString("Close box")
		w.menu.status = w.cat.GetString("Status: Activity resumed")
		w.menu.color = colors.LightGreen
	}
	w.menu.quit = w.cat.GetString("Quit activity")
	w.apply()
}

func (w *ActivityWindow) closeMenu() {
	w.menu.resume = ""
	w.menu.close = w.cat.GetString("Close box")
	w.menu.quit = w.cat.GetString("Quit activity")
	w.menu.status = w.cat.GetString("Status: Activity resumed")
	w.menu.color = colors.LightGreen
	w.apply()
}

func (w *ActivityWindow) endMenu() {
	w.menu.resume = ""
	w.menu.close = w.cat.GetString("Resume and close box")
	w.menu.quit = w.cat.GetString("End Activity")
	w.menu.status = w.cat.GetString("Status: Activity paused")
	w.menu.color = colors.LightSalmon
	w.apply()
}

func (w *ActivityWindow) noPauseMenu() {
	w.menu.resume = w.cat.GetString("Pause")
	w.menu.close = w.cat.GetString("Close box")
	w.menu.quit = w.cat.GetString("Quit activity")
	w.menu.status = w.cat.GetString("Status: Activity running")
	w.menu.color = colors.LightGreen
	w.apply()
}

func (w *ActivityWindow) compose(event, message string) {
	w.menu.event = w.cat.GetStringf("Event: %s", event)
	w.menu.message = message
	if w.scroller != nil {
		w.scroller.SetScrollPosition(0)
	}
	w.apply()
}
