package carousel

import (
	"context"
	"sync"
	"time"
)

// CommunityInterval is the spotlight rotation period.
const CommunityInterval = 3800 * time.Millisecond

// Loop is an endless slider. With more than one item the track carries a
// copy of the first item at the end; reaching it and finishing the
// transition jumps back to 0 with the animation switched off, so the
// rotation never plays backwards.
type Loop struct {
	mu         sync.RWMutex
	n          int
	index      int
	transition bool
}

type LoopState struct {
	Index      int  `json:"index"`
	Dot        int  `json:"dot"`
	Slides     int  `json:"slides"`
	Transition bool `json:"transition"`
}

func NewLoop(n int) *Loop {
	l := &Loop{}
	l.Reset(n)
	return l
}

// Reset starts over with n items.
func (l *Loop) Reset(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.n = max(n, 0)
	l.index = 0
	l.transition = true
}

// Len is the number of distinct items.
func (l *Loop) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.n
}

// Slides is the track length.
func (l *Loop) Slides() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.slides()
}

func (l *Loop) slides() int {
	if l.n > 1 {
		return l.n + 1
	}
	return l.n
}

// SlideItem maps a slide position to the item it shows.
func (l *Loop) SlideItem(slide int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return wrap(slide, l.n)
}

func (l *Loop) Tick() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.n <= 1 {
		return
	}
	if l.index == l.slides()-1 {
		// the previous transition end was missed
		l.index = 0
	}
	l.transition = true
	l.index++
}

func (l *Loop) TransitionEnd() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.n > 1 && l.index == l.slides()-1 {
		l.transition = false
		l.index = 0
	}
}

// Frame re-enables the animation after a jump.
func (l *Loop) Frame() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transition = true
}

func (l *Loop) Index() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.index
}

func (l *Loop) Transition() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.transition
}

// Dot is the highlighted pagination dot.
func (l *Loop) Dot() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return wrap(l.index, l.n)
}

func (l *Loop) State() LoopState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return LoopState{
		Index:      l.index,
		Dot:        wrap(l.index, l.n),
		Slides:     l.slides(),
		Transition: l.transition,
	}
}

// Run ticks the loop every interval until ctx is done. Each tick is
// followed by the transition end and the next frame. onTick may be nil.
func (l *Loop) Run(ctx context.Context, interval time.Duration, onTick func(LoopState)) {
	if interval <= 0 {
		interval = CommunityInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Tick()
			l.TransitionEnd()
			if onTick != nil {
				onTick(l.State())
			}
			l.Frame()
		}
	}
}
