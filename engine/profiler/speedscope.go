package profiler

import (
	"encoding/json"
	"io"
)

const speedscopeSchema = "https://www.speedscope.app/file-format-schema.json"

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"`
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}

// speedscopeEvents converts ring events into balanced open/close pairs in
// microseconds since the first event. Closes that do not match the open
// scope are dropped; scopes still open at the end are closed there.
func speedscopeEvents(evs []event) ([]ssEvent, int64) {
	if len(evs) == 0 {
		return nil, 0
	}
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs))
	var stack []int
	var last int64
	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.frame)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

func writeSpeedscope(w io.Writer, names []string, evs []event) error {
	out, end := speedscopeEvents(evs)
	if len(out) == 0 {
		return ErrNoEvents
	}
	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i] = ssFrame{Name: n}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ssFile{
		Schema: speedscopeSchema,
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "railhud",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "railhud-profiler",
		Name:     "railhud capture",
	})
}
