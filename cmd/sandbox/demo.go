package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hubastard/railhud/engine/popups"
)

// scriptedEvent fires once the train has run for At seconds.
type scriptedEvent struct {
	At      float64
	Name    string
	Message string
	Pause   bool
}

var demoScript = []scriptedEvent{
	{At: 3, Name: "Departure", Message: "Your train is ready to leave Riverside.\nRelease the brakes and depart on the green signal.", Pause: true},
	{At: 20, Name: "Speed restriction", Message: "Track work ahead. Keep below 40 km/h until the end of the restriction."},
	{At: 45, Name: "Station stop", Message: "Stop at Hillcrest platform 2 to pick up passengers.", Pause: true},
	{At: 70, Name: "Arrival", Message: "You reached the terminus."},
}

// trainSim is a toy activity: the train runs while not paused and fires
// the scripted events in order.
type trainSim struct {
	mu sync.Mutex

	script    []scriptedEvent
	next      int
	cont      int
	elapsed   float64
	paused    bool
	quit      bool
	triggered *popups.ActivityEvent
}

func newTrainSim(script []scriptedEvent, continueSeconds int) *trainSim {
	return &trainSim{script: script, cont: continueSeconds}
}

// Advance runs the simulation for dt seconds unless paused.
func (s *trainSim) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused || s.quit {
		return
	}
	s.elapsed += dt
	if s.triggered != nil || s.next >= len(s.script) {
		return
	}
	ev := s.script[s.next]
	if s.elapsed < ev.At {
		return
	}
	s.next++
	cont := s.cont
	if ev.Pause {
		cont = -1
	}
	s.triggered = &popups.ActivityEvent{Name: ev.Name, Message: ev.Message, Continue: cont}
}

func (s *trainSim) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *trainSim) TriggeredEvent() *popups.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.triggered
}

func (s *trainSim) ClearTriggeredEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggered = nil
}

func (s *trainSim) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next >= len(s.script) || s.quit
}

func (s *trainSim) Successful() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.quit
}

func (s *trainSim) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *trainSim) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

func (s *trainSim) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quit = true
}

func (s *trainSim) Quitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}

var errNoReceivers = errors.New("no receivers online")

// crewMessenger delivers composed messages to other crews on the layout by
// echoing them into the message log.
type crewMessenger struct {
	log    *slog.Logger
	online map[string]bool
	last   string
	echo   func(key, text string)
}

func (c *crewMessenger) LastSender() string { return c.last }

func (c *crewMessenger) IsOnline(name string) bool { return c.online[strings.ToLower(name)] }

func (c *crewMessenger) Send(to []string, body string) error {
	if len(to) == 0 {
		return errNoReceivers
	}
	c.log.Info("message sent", "to", to, "body", body)
	if c.echo != nil {
		c.echo("", fmt.Sprintf("To %s: %s", strings.Join(to, ", "), body))
	}
	return nil
}
