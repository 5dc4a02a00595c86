package popups

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hubastard/railhud/engine/catalog"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

// Messenger delivers chat messages to other players.
type Messenger interface {
	// LastSender is who sent the last message received, or "".
	LastSender() string
	IsOnline(player string) bool
	// Send delivers body to the players in to; an empty to broadcasts.
	Send(to []string, body string) error
}

// ComposeMessageWindow is a one line editor for chat messages of the form
// "receiver1, receiver2: body".
type ComposeMessageWindow struct {
	*wm.Window
	messenger Messenger

	text      string
	composing bool
	label     *ui.Label
}

func NewComposeMessageWindow(m *wm.Manager, cat *catalog.Catalog, messenger Messenger) *ComposeMessageWindow {
	w := &ComposeMessageWindow{messenger: messenger}
	th := m.TextHeight()
	w.Window = wm.NewWindow(m, w, wm.Options{
		Name:    "ComposeMessage",
		Caption: cat.GetString("Compose Message (e.g.   receiver1, receiver2: message body)"),
		Width:   wm.DecorationSize.X + th*37,
		Height:  wm.DecorationSize.Y + th*2 + ui.SeparatorSize,
	})
	return w
}

func (w *ComposeMessageWindow) Text() string    { return w.text }
func (w *ComposeMessageWindow) Composing() bool { return w.composing }

// Begin opens the editor, addressed to whoever wrote last.
func (w *ComposeMessageWindow) Begin() {
	if sender := w.messenger.LastSender(); sender != "" {
		w.setText(sender + ":")
	}
	w.composing = true
	w.SetVisible(true)
}

func (w *ComposeMessageWindow) setText(s string) {
	w.text = s
	if w.label != nil {
		w.label.Text = s
	}
}

func (w *ComposeMessageWindow) Layout(parent *ui.Layout) *ui.Layout {
	vbox := w.Window.Layout(parent).AddLayoutVertical()
	hbox := vbox.AddLayoutHorizontalLineOfText()
	w.label = ui.NewLabel(0, 0, hbox.RemainingWidth(), hbox.RemainingHeight(), w.text, ui.AlignLeft)
	hbox.Add(w.label)
	return vbox
}

// HandleKeys applies the keys pressed this tick. Enter sends the message
// and closes the editor. It reports whether the editor took the keys.
func (w *ComposeMessageWindow) HandleKeys(in core.InputState) bool {
	if !w.composing {
		return false
	}
	typed, enter := KeysToText(in.KeysPressed, in.Shift())
	text := w.text
	for _, r := range typed {
		if r == '\b' {
			_, size := utf8.DecodeLastRuneInString(text)
			text = text[:len(text)-size]
			continue
		}
		text += string(r)
	}
	w.setText(text)
	if enter {
		w.send()
	}
	return true
}

func (w *ComposeMessageWindow) send() {
	to, body := w.receivers(w.text)
	if err := w.messenger.Send(to, body); err != nil {
		w.Owner().Logger().Warn("message not sent", "to", strings.Join(to, ","), "err", err)
	}
	w.Cancel()
}

// Cancel closes the editor and drops the text.
func (w *ComposeMessageWindow) Cancel() {
	w.composing = false
	w.setText("")
	w.SetVisible(false)
}

// receivers splits "a, b: body" into the online players named before the
// colon and the body. Without a colon the whole text is the body.
func (w *ComposeMessageWindow) receivers(s string) ([]string, string) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return nil, s
	}
	var to []string
	for _, name := range strings.Split(s[:i], ",") {
		name = strings.TrimSpace(name)
		if name != "" && w.messenger.IsOnline(name) {
			to = append(to, name)
		}
	}
	return to, s[i+1:]
}

var shiftedDigits = [10]rune{')', '!', '@', '#', '$', '%', '^', '&', '*', '('}

// punctuation maps a key to its plain and shifted characters.
var punctuation = map[core.Key][2]rune{
	core.KeySpace:        {' ', ' '},
	core.KeyPeriod:       {'.', '>'},
	core.KeyComma:        {',', '<'},
	core.KeyMinus:        {'-', '_'},
	core.KeyEqual:        {'=', '+'},
	core.KeySlash:        {'/', '?'},
	core.KeySemicolon:    {';', ':'},
	core.KeyApostrophe:   {'\'', '"'},
	core.KeyLeftBracket:  {'[', '{'},
	core.KeyRightBracket: {']', '}'},
	core.KeyGraveAccent:  {'`', '~'},
}

// KeysToText turns the keys pressed in one tick into characters, with
// backspace as '\b'. Keys after Enter are ignored; enter reports whether
// Enter was pressed.
func KeysToText(keys []core.Key, shift bool) (text []rune, enter bool) {
	for _, k := range keys {
		switch {
		case k == core.KeyEnter:
			return text, true
		case k == core.KeyBackspace:
			text = append(text, '\b')
		case k >= core.KeyA && k <= core.KeyZ:
			r := 'a' + rune(k-core.KeyA)
			if shift {
				r = unicode.ToUpper(r)
			}
			text = append(text, r)
		case k >= core.Key0 && k <= core.Key9:
			d := int(k - core.Key0)
			if shift {
				text = append(text, shiftedDigits[d])
			} else {
				text = append(text, '0'+rune(d))
			}
		default:
			if p, ok := punctuation[k]; ok {
				if shift {
					text = append(text, p[1])
				} else {
					text = append(text, p[0])
				}
			}
		}
	}
	return text, false
}
