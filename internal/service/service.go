// Package service wires the configuration store, the menu coordinator and the
// reconciler into the operations the HTTP API and the terminal menu expose.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"snnd/internal/algoconfig"
	"snnd/internal/backend"
	"snnd/internal/journal"
	"snnd/internal/menu"
	"snnd/internal/registry"
	"snnd/pkg/types"
)

// EventCommit is published after the menu commits a configuration.
const EventCommit = "commit"

// Options configures a Service. Backend is required.
type Options struct {
	Backend backend.Backend
	// Store defaults to algoconfig.New().
	Store  *algoconfig.Store
	Labels algoconfig.LabelTables
	// AssetsDir is scanned by Models; empty reports every model unavailable.
	AssetsDir        string
	HideShaderChoice bool
	ApplyTimeout     time.Duration
	// Journal, when set, records events and backs Events.
	Journal *journal.Journal
	// Publisher receives events in addition to the journal.
	Publisher backend.EventPublisher
	Logger    zerolog.Logger
}

// Service is safe for concurrent use.
type Service struct {
	store   *algoconfig.Store
	coord   *menu.Coordinator
	rec     *backend.Reconciler
	be      backend.Backend
	labels  algoconfig.LabelTables
	assets  string
	journal *journal.Journal
	pub     backend.EventPublisher
	log     zerolog.Logger
	started time.Time

	closeOnce sync.Once
	closeErr  error
}

// classifierSink accepts classifier output pushed by a client.
type classifierSink interface {
	SetClassifierIndex(int)
}

// New builds a Service and its reconciler.
func New(opts Options) (*Service, error) {
	if opts.Backend == nil {
		return nil, errors.New("service: backend is required")
	}
	store := opts.Store
	if store == nil {
		store = algoconfig.New()
	}
	pubs := backend.MultiPublisher{}
	if opts.Journal != nil {
		pubs = append(pubs, opts.Journal)
	}
	if opts.Publisher != nil {
		pubs = append(pubs, opts.Publisher)
	}
	s := &Service{
		store:   store,
		be:      opts.Backend,
		labels:  opts.Labels.WithDefaults(),
		assets:  opts.AssetsDir,
		journal: opts.Journal,
		pub:     pubs,
		log:     opts.Logger,
		started: time.Now(),
	}
	s.rec = backend.NewReconciler(store, opts.Backend, backend.ReconcilerConfig{
		Logger:       opts.Logger,
		Publisher:    pubs,
		ApplyTimeout: opts.ApplyTimeout,
	})
	s.coord = menu.New(store, menu.Config{
		HideShaderChoice: opts.HideShaderChoice,
		Logger:           opts.Logger,
		OnCommit:         s.onCommit,
	})
	return s, nil
}

func (s *Service) onCommit() {
	snap := s.store.Snapshot()
	s.pub.Publish(backend.Event{Name: EventCommit, Revision: snap.Revision, Fields: backend.SnapshotFields(snap)})
	if snap.Change != algoconfig.PendingApply {
		// Nothing changed; the previous state stands.
		return
	}
	if err := s.rec.Kick(); err != nil {
		s.log.Warn().Err(err).Msg("reconciler kick")
	}
}

// View returns the coordinator's derived menu state.
func (s *Service) View() menu.View { return s.coord.View() }

// Choose applies one menu event.
func (s *Service) Choose(o menu.Option) (menu.Result, error) { return s.coord.Select(o) }

// Menu returns the menu state in wire form.
func (s *Service) Menu() types.MenuView { return toMenuView(s.coord.View()) }

// Select parses name and applies it as a menu event.
func (s *Service) Select(name string) (types.SelectResponse, error) {
	o, err := menu.ParseOption(name)
	if err != nil {
		return types.SelectResponse{Menu: s.Menu()}, err
	}
	res, err := s.coord.Select(o)
	return types.SelectResponse{
		Handled:  res.Handled,
		Ran:      res.Ran,
		KeepOpen: res.KeepOpen,
		Menu:     toMenuView(res.View),
	}, err
}

// Config returns the committed configuration.
func (s *Service) Config() types.ConfigResponse {
	snap := s.store.Snapshot()
	return types.ConfigResponse{
		Denoiser:         string(snap.Denoiser),
		DenoiserShader:   string(snap.DenoiserShader),
		Classifier:       string(snap.Classifier),
		ClassifierShader: string(snap.ClassifierShader),
		Detection:        string(snap.Detection),
		DetectionShader:  string(snap.DetectionShader),
		StyleTransfer:    string(snap.StyleTransfer),
		Precision:        string(snap.Precision),
		ClassifierIndex:  snap.ClassifierIndex,
		ChangeState:      string(snap.Change),
		Revision:         snap.Revision,
	}
}

// Progress reports whether the loading indicator should show. An applied
// change is acknowledged exactly once: the call that observes it clears the
// flag and reports Dismissed.
func (s *Service) Progress() types.ProgressResponse {
	if s.store.DismissApplied() {
		return types.ProgressResponse{State: string(algoconfig.Applied), Dismissed: true}
	}
	st := s.store.ChangeState()
	return types.ProgressResponse{Loading: st == algoconfig.PendingApply, State: string(st)}
}

// ClassifierLabel refreshes the classifier index from the backend, when it
// produces one, and returns the label for it.
func (s *Service) ClassifierLabel() types.ClassifierResponse {
	if src, ok := s.be.(backend.ClassifierSource); ok && s.store.Snapshot().Classifier != algoconfig.ClassifierNone {
		s.store.SetClassifierIndex(src.ClassifierIndex())
	}
	return types.ClassifierResponse{
		Label: s.store.ClassifierLabel(s.labels),
		Index: s.store.ClassifierIndex(),
	}
}

// SetClassifierIndex records a classifier output reported by a client.
func (s *Service) SetClassifierIndex(i int) types.ClassifierResponse {
	if sink, ok := s.be.(classifierSink); ok {
		sink.SetClassifierIndex(i)
	}
	s.store.SetClassifierIndex(i)
	return types.ClassifierResponse{Label: s.store.ClassifierLabel(s.labels), Index: i}
}

// Models reports which model assets are installed.
func (s *Service) Models() ([]types.Model, error) { return registry.LoadDir(s.assets) }

// Events returns up to limit journal entries, newest first. Without a
// journal the list is empty.
func (s *Service) Events(limit int) ([]types.Event, error) {
	if s.journal == nil {
		return []types.Event{}, nil
	}
	entries, err := s.journal.Recent(limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.Event, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.Event{
			ID:       e.ID,
			OpID:     e.OpID,
			Name:     e.Name,
			Revision: e.Revision,
			Fields:   e.Fields,
			AtUnixMs: e.At.UnixMilli(),
		})
	}
	return out, nil
}

// Status builds the response for /status.
func (s *Service) Status() types.StatusResponse {
	snap := s.store.Snapshot()
	rs := s.rec.Status()
	resp := types.StatusResponse{
		ChangeState:    string(snap.Change),
		Revision:       snap.Revision,
		Backend:        rs.Backend,
		Applying:       rs.Running,
		LastOpID:       rs.LastOpID,
		LastError:      rs.LastError,
		AppliesTotal:   rs.AppliesTotal,
		FailuresTotal:  rs.FailuresTotal,
		UptimeSeconds:  int64(time.Since(s.started).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	if c, ok := snap.ActiveCategory(); ok {
		resp.ActiveCategory = string(c)
	}
	return resp
}

// Ready reports whether the backend runs the committed configuration.
func (s *Service) Ready() bool { return !s.store.IsPendingApply() }

// Wait blocks until no apply is in flight.
func (s *Service) Wait(ctx context.Context) error { return s.rec.Wait(ctx) }

// Close stops the reconciler and closes the journal.
func (s *Service) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		err := s.rec.Close(ctx)
		if s.journal != nil {
			if jerr := s.journal.Close(); err == nil {
				err = jerr
			}
		}
		s.closeErr = err
	})
	return s.closeErr
}

func toMenuView(v menu.View) types.MenuView {
	checked := v.Checked()
	names := make([]string, 0, len(checked))
	for _, o := range checked {
		names = append(names, string(o))
	}
	return types.MenuView{
		Checked:                  names,
		ClassifierChoicesVisible: v.ClassifierChoicesVisible,
		StyleChoicesVisible:      v.StyleChoicesVisible,
		ShaderChoiceVisible:      v.ShaderChoiceVisible,
		FragmentShaderEnabled:    v.FragmentShaderEnabled,
		ConcreteModelSelected:    v.ConcreteModelSelected,
		RunEnabled:               v.RunEnabled,
	}
}
