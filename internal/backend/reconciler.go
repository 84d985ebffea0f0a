package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"snnd/internal/algoconfig"
)

// Store is the part of the configuration store the reconciler needs.
type Store interface {
	Snapshot() algoconfig.Snapshot
	IsPendingApply() bool
	MarkAppliedRevision(rev uint64) bool
}

// ReconcilerConfig tunes a Reconciler.
type ReconcilerConfig struct {
	Logger    zerolog.Logger
	Publisher EventPublisher
	// ApplyTimeout bounds one Apply call; zero means no limit.
	ApplyTimeout time.Duration
}

// Status is a point-in-time view of the reconciler.
type Status struct {
	Backend       string
	Running       bool
	LastOpID      string
	LastError     string
	AppliesTotal  uint64
	FailuresTotal uint64
}

// Reconciler hands pending configuration to the backend, one apply at a
// time, and acknowledges it with the revision that was applied.
type Reconciler struct {
	store   Store
	be      Backend
	pub     EventPublisher
	log     zerolog.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	running  bool
	rerun    bool
	closed   bool
	idle     chan struct{}
	lastOp   string
	lastErr  string
	applies  uint64
	failures uint64
}

func NewReconciler(store Store, be Backend, cfg ReconcilerConfig) *Reconciler {
	pub := cfg.Publisher
	if pub == nil {
		pub = noopPublisher{}
	}
	idle := make(chan struct{})
	close(idle)
	// Applies run on a detached context so they outlive the request that
	// triggered them; Close cancels it.
	ctx, cancel := context.WithCancel(context.Background())
	return &Reconciler{
		store:   store,
		be:      be,
		pub:     pub,
		log:     cfg.Logger.With().Str("backend", be.Name()).Logger(),
		timeout: cfg.ApplyTimeout,
		ctx:     ctx,
		cancel:  cancel,
		idle:    idle,
	}
}

// Kick starts applying the pending configuration in the background. A kick
// while an apply is in flight schedules one more pass after it.
func (r *Reconciler) Kick() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if r.running {
		r.rerun = true
		return nil
	}
	r.running = true
	r.idle = make(chan struct{})
	go r.loop(r.idle)
	return nil
}

func (r *Reconciler) loop(idle chan struct{}) {
	for {
		if r.store.IsPendingApply() && r.ctx.Err() == nil {
			r.applyOnce()
		}
		r.mu.Lock()
		if !r.rerun || r.closed {
			r.running = false
			r.rerun = false
			close(idle)
			r.mu.Unlock()
			return
		}
		r.rerun = false
		r.mu.Unlock()
	}
}

func (r *Reconciler) applyOnce() {
	snap := r.store.Snapshot()
	op := uuid.NewString()
	log := r.log.With().Str("op_id", op).Uint64("revision", snap.Revision).Logger()
	r.pub.Publish(Event{Name: EventApplyStart, OpID: op, Revision: snap.Revision, Fields: SnapshotFields(snap)})
	log.Info().Msg("apply start")

	ctx, cancel := r.ctx, context.CancelFunc(func() {})
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(r.ctx, r.timeout)
	}
	start := time.Now()
	applyInflight.Set(1)
	err := r.safeApply(ctx, snap)
	applyInflight.Set(0)
	cancel()
	dur := time.Since(start)
	applyDuration.WithLabelValues(r.be.Name()).Observe(dur.Seconds())

	r.mu.Lock()
	r.lastOp = op
	if err != nil {
		r.failures++
		r.lastErr = err.Error()
	} else {
		r.applies++
		r.lastErr = ""
	}
	r.mu.Unlock()

	if err != nil {
		result := "error"
		if IsUnavailable(err) {
			result = "unavailable"
		}
		appliesTotal.WithLabelValues(r.be.Name(), result).Inc()
		r.pub.Publish(Event{Name: EventApplyError, OpID: op, Revision: snap.Revision, Fields: map[string]any{"error": err.Error(), "result": result}})
		log.Error().Err(err).Str("result", result).Dur("dur", dur).Msg("apply failed")
		return
	}
	if r.store.MarkAppliedRevision(snap.Revision) {
		appliesTotal.WithLabelValues(r.be.Name(), "ok").Inc()
		r.pub.Publish(Event{Name: EventApplyDone, OpID: op, Revision: snap.Revision, Fields: map[string]any{"dur_ms": dur.Milliseconds()}})
		log.Info().Dur("dur", dur).Msg("apply done")
		return
	}
	// A newer change landed while the backend was busy.
	appliesTotal.WithLabelValues(r.be.Name(), "stale").Inc()
	r.pub.Publish(Event{Name: EventApplyStale, OpID: op, Revision: snap.Revision})
	log.Debug().Msg("apply superseded")
	r.mu.Lock()
	r.rerun = true
	r.mu.Unlock()
}

// safeApply converts a backend panic into an unavailable error.
func (r *Reconciler) safeApply(ctx context.Context, snap algoconfig.Snapshot) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = ErrUnavailable(fmt.Sprintf("backend panic: %v", p))
		}
	}()
	return r.be.Apply(ctx, snap)
}

// Wait blocks until no apply is in flight or ctx is done.
func (r *Reconciler) Wait(ctx context.Context) error {
	r.mu.Lock()
	idle := r.idle
	r.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the in-flight apply and waits for the loop to exit.
func (r *Reconciler) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()
	return r.Wait(ctx)
}

func (r *Reconciler) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{
		Backend:       r.be.Name(),
		Running:       r.running,
		LastOpID:      r.lastOp,
		LastError:     r.lastErr,
		AppliesTotal:  r.applies,
		FailuresTotal: r.failures,
	}
}

// SnapshotFields flattens a snapshot for event payloads.
func SnapshotFields(s algoconfig.Snapshot) map[string]any {
	return map[string]any{
		"denoiser":          string(s.Denoiser),
		"denoiser_shader":   string(s.DenoiserShader),
		"classifier":        string(s.Classifier),
		"classifier_shader": string(s.ClassifierShader),
		"detection":         string(s.Detection),
		"detection_shader":  string(s.DetectionShader),
		"style_transfer":    string(s.StyleTransfer),
		"precision":         string(s.Precision),
	}
}
