package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	DefaultDismissAfter = 2 * time.Second
	DefaultFadeFor      = 300 * time.Millisecond
)

// Timer is the handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Notifier attaches self-dismissing banners to a document. A banner is
// visible, turns fading after dismissAfter, and is removed fadeFor later.
type Notifier struct {
	doc          *page.Document
	logg         *logger.Logger
	sched        Scheduler
	dismissAfter time.Duration
	fadeFor      time.Duration

	mu     sync.Mutex
	timers map[int]Timer
	seq    int
	closed bool
}

// Option customizes a Notifier.
type Option func(*Notifier)

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(n *Notifier) {
		if s != nil {
			n.sched = s
		}
	}
}

// New wires a notifier for one document.
func New(doc *page.Document, cfg config.NotifyConfig, logg *logger.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		doc:          doc,
		logg:         logg,
		sched:        clockScheduler{},
		dismissAfter: cfg.DismissAfter,
		fadeFor:      cfg.FadeFor,
		timers:       make(map[int]Timer),
	}
	if n.dismissAfter <= 0 {
		n.dismissAfter = DefaultDismissAfter
	}
	if n.fadeFor <= 0 {
		n.fadeFor = DefaultFadeFor
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify inserts a banner and schedules its dismissal. Unknown kinds fall back
// to success. It returns the banner id.
func (n *Notifier) Notify(ctx context.Context, message string, kind enums.NotificationKind) int {
	if !kind.IsValid() {
		kind = enums.NotificationKindSuccess
	}
	id := n.doc.AddBanner(message, kind)
	if n.logg != nil {
		n.logg.Debug(n.logg.WithFields(ctx, map[string]any{
			"banner_id": id,
			"kind":      string(kind),
		}), "notification shown")
	}

	n.schedule(n.dismissAfter, func() {
		n.doc.SetBannerState(id, enums.BannerStateFading)
		n.schedule(n.fadeFor, func() {
			n.doc.SetBannerState(id, enums.BannerStateRemoved)
		})
	})
	return id
}

func (n *Notifier) schedule(d time.Duration, f func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.seq++
	key := n.seq
	n.timers[key] = n.sched.AfterFunc(d, func() {
		n.mu.Lock()
		_, live := n.timers[key]
		delete(n.timers, key)
		n.mu.Unlock()
		if live {
			f()
		}
	})
}

// Pending reports how many dismissal steps are still scheduled.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.timers)
}

// Close stops every pending timer. Banners keep their current state.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for key, t := range n.timers {
		t.Stop()
		delete(n.timers, key)
	}
}
