package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	swipeerrors "github.com/go-drift/swipeactions/pkg/errors"
	"github.com/go-drift/swipeactions/pkg/gestures"
	"github.com/go-drift/swipeactions/pkg/graphics"
)

// Script operations.
const (
	OpSwipe  = "swipe"
	OpTap    = "tap"
	OpWait   = "wait"
	OpAdd    = "add"
	OpRemove = "remove"
	OpScroll = "scroll"
)

const (
	swipeSteps    = 5
	swipeInterval = 16 * time.Millisecond
	// swipeHold outlasts the velocity window so a scripted swipe settles by
	// position rather than by fling.
	swipeHold = 120 * time.Millisecond
)

// Step is one scripted interaction.
type Step struct {
	Op     string         `yaml:"op"`
	Card   string         `yaml:"card,omitempty"`
	Action int            `yaml:"action,omitempty"`
	DX     float64        `yaml:"dx,omitempty"`
	For    time.Duration  `yaml:"for,omitempty"`
	Color  graphics.Color `yaml:"color,omitempty"`
}

// Script is a sequence of steps played against a running Home.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// DefaultScript bookmarks the purple card, then deletes it.
func DefaultScript() *Script {
	return &Script{Steps: []Step{
		{Op: OpSwipe, Card: "purple", DX: -200},
		{Op: OpWait, For: 400 * time.Millisecond},
		{Op: OpTap, Card: "purple", Action: 0},
		{Op: OpWait, For: 500 * time.Millisecond},
		{Op: OpSwipe, Card: "purple", DX: -200},
		{Op: OpWait, For: 400 * time.Millisecond},
		{Op: OpTap, Card: "purple", Action: 1},
		{Op: OpWait, For: 800 * time.Millisecond},
	}}
}

// ParseScript decodes a YAML script and checks every step.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	switch s.Op {
	case OpWait:
		if s.For <= 0 {
			return fmt.Errorf("wait needs a positive duration")
		}
	case OpSwipe:
		if s.Card == "" || s.DX == 0 {
			return fmt.Errorf("swipe needs a card and a non-zero dx")
		}
	case OpTap:
		if s.Card == "" || s.Action < 0 {
			return fmt.Errorf("tap needs a card and an action index")
		}
	case OpAdd, OpRemove, OpScroll:
		if s.Card == "" {
			return fmt.Errorf("%s needs a card", s.Op)
		}
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}

// Player feeds a script to a Home running on a Runner. Play is called from
// any goroutine other than the runner's.
type Player struct {
	runner    *Runner
	home      *Home
	logger    zerolog.Logger
	nextID    int64
	sleepFunc func(context.Context, time.Duration) error
}

// NewPlayer returns a player for home, which must be the runner's surface.
func NewPlayer(runner *Runner, home *Home, logger zerolog.Logger) *Player {
	return &Player{runner: runner, home: home, logger: logger, sleepFunc: sleep}
}

// Play runs every step in order. It stops at the first failing step.
func (p *Player) Play(ctx context.Context, script *Script) error {
	for i, step := range script.Steps {
		p.logger.Debug().Int("step", i).Str("op", step.Op).Str("card", step.Card).Msg("play")
		if err := p.play(ctx, step); err != nil {
			return swipeerrors.Wrap("demo.Player.Play", swipeerrors.KindInput, fmt.Errorf("steps[%d] %s: %w", i, step.Op, err))
		}
	}
	return nil
}

func (p *Player) play(ctx context.Context, step Step) error {
	switch step.Op {
	case OpWait:
		return p.sleepFunc(ctx, step.For)
	case OpSwipe:
		return p.swipe(ctx, step.Card, step.DX)
	case OpTap:
		return p.tap(ctx, step.Card, step.Action)
	case OpAdd:
		var err error
		if callErr := p.runner.Call(ctx, func() {
			err = p.home.Add(Card{Name: step.Card, Color: step.Color})
		}); callErr != nil {
			return callErr
		}
		return err
	case OpRemove:
		return p.runner.Call(ctx, func() { p.home.Remove(step.Card) })
	case OpScroll:
		var found bool
		if err := p.runner.Call(ctx, func() { found = p.home.ScrollTo(step.Card) }); err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no card %q", step.Card)
		}
		return nil
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

func (p *Player) swipe(ctx context.Context, card string, dx float64) error {
	var (
		start graphics.Offset
		ok    bool
	)
	if err := p.runner.Call(ctx, func() { start, ok = p.home.CellCenter(card) }); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no card %q", card)
	}

	id := p.allocPointerID()
	p.runner.Pointer(gestures.PointerEvent{PointerID: id, Position: start, Phase: gestures.PointerPhaseDown})
	pos := start
	for i := 1; i <= swipeSteps; i++ {
		if err := p.sleepFunc(ctx, swipeInterval); err != nil {
			return err
		}
		next := graphics.Offset{X: start.X + dx*float64(i)/swipeSteps, Y: start.Y}
		p.runner.Pointer(gestures.PointerEvent{PointerID: id, Position: next, Delta: next.Sub(pos), Phase: gestures.PointerPhaseMove})
		pos = next
	}
	if err := p.sleepFunc(ctx, swipeHold); err != nil {
		return err
	}
	p.runner.Pointer(gestures.PointerEvent{PointerID: id, Position: pos, Phase: gestures.PointerPhaseMove})
	p.runner.Pointer(gestures.PointerEvent{PointerID: id, Position: pos, Phase: gestures.PointerPhaseUp})
	return nil
}

func (p *Player) tap(ctx context.Context, card string, action int) error {
	var (
		pos graphics.Offset
		ok  bool
	)
	if err := p.runner.Call(ctx, func() { pos, ok = p.home.ActionCenter(card, action) }); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no action %d on card %q", action, card)
	}
	id := p.allocPointerID()
	p.runner.Pointer(gestures.PointerEvent{PointerID: id, Position: pos, Phase: gestures.PointerPhaseDown})
	p.runner.Pointer(gestures.PointerEvent{PointerID: id, Position: pos, Phase: gestures.PointerPhaseUp})
	return nil
}

func (p *Player) allocPointerID() int64 {
	p.nextID++
	return p.nextID
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
