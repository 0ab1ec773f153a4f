package facade

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dimitrije/showcase-api/internal/cache"
	"github.com/dimitrije/showcase-api/internal/events"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/internal/retry"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrRemoteUnavailable = errors.New("remote backend unavailable")
	ErrSubmitFailed      = errors.New("submission failed")
	ErrLocalRequired     = errors.New("local fallback store is required")
)

var (
	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "showcase_facade_fallbacks_total",
		Help: "Reads served from the local fallback store.",
	}, []string{"resource"})
	remoteErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "showcase_facade_remote_errors_total",
		Help: "Failed remote backend operations.",
	}, []string{"op"})
	remoteAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "showcase_remote_available",
		Help: "1 when the facade routes through the remote backend.",
	})
)

// Remote is the hosted backend the facade prefers.
type Remote interface {
	Ping(ctx context.Context) error
	List(ctx context.Context, resource string, q remote.Query) ([]models.Record, error)
	Insert(ctx context.Context, resource string, rec models.Record) (models.Record, error)
	InsertAll(ctx context.Context, resource string, records []models.Record) error
	Delete(ctx context.Context, resource, id string) error
	DeleteAll(ctx context.Context, resource string) error
	Count(ctx context.Context, resource, field, value string) (int64, error)
}

// Local is the persistent fallback store.
type Local interface {
	Load(ctx context.Context, key string) ([]models.Record, error)
	Store(ctx context.Context, key string, records []models.Record) error
}

// Mode is the backend selector.
type Mode int32

const (
	ModeLocal Mode = iota
	ModeRemote
)

func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}

type Options struct {
	// Remote may be nil, in which case the facade stays in ModeLocal.
	Remote   Remote
	Local    Local
	Cache    *cache.Cache
	Registry *events.Registry
	Retry    retry.Policy
	Logger   *zap.Logger
	// Rules defaults to DefaultRules().
	Rules map[string]Rule
}

// SubmitResult is the outcome of Submit. Record is set only on success.
type SubmitResult struct {
	Success bool
	Record  models.Record
	Err     error
}

// Facade is the single data access point for every resource: an in-memory
// cache in front of the remote backend, with the local store as fallback.
type Facade struct {
	remote   Remote
	local    Local
	cache    *cache.Cache
	registry *events.Registry
	retry    retry.Policy
	rules    map[string]Rule
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string

	mode  atomic.Int32
	group singleflight.Group
}

// New builds a facade and decides the initial backend mode with one probe.
func New(ctx context.Context, opts Options) (*Facade, error) {
	if opts.Local == nil {
		return nil, ErrLocalRequired
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cache == nil {
		opts.Cache = cache.New(0, 0)
	}
	if opts.Registry == nil {
		opts.Registry = events.NewRegistry(opts.Logger)
	}
	if opts.Rules == nil {
		opts.Rules = DefaultRules()
	}

	f := &Facade{
		remote:   opts.Remote,
		local:    opts.Local,
		cache:    opts.Cache,
		registry: opts.Registry,
		retry:    opts.Retry,
		rules:    opts.Rules,
		logger:   opts.Logger.Named("facade"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	f.Recheck(ctx)
	return f, nil
}

func (f *Facade) Mode() Mode {
	return Mode(f.mode.Load())
}

func (f *Facade) Registry() *events.Registry {
	return f.registry
}

// Recheck pings the remote backend and updates the mode.
func (f *Facade) Recheck(ctx context.Context) Mode {
	next := ModeLocal
	if f.remote != nil {
		if err := f.remote.Ping(ctx); err != nil {
			f.logger.Warn("remote backend unreachable", zap.Error(err))
		} else {
			next = ModeRemote
		}
	}

	prev := Mode(f.mode.Swap(int32(next)))
	if prev != next {
		f.logger.Info("backend mode changed",
			zap.Stringer("from", prev),
			zap.Stringer("to", next))
	}
	if next == ModeRemote {
		remoteAvailable.Set(1)
	} else {
		remoteAvailable.Set(0)
	}
	return next
}

func (f *Facade) remoteReady() bool {
	return f.remote != nil && f.Mode() == ModeRemote
}

// call runs op under the retry policy. Errors no retry can fix stop it early.
func (f *Facade) call(ctx context.Context, op func() error) error {
	return f.retry.Do(ctx, func() error {
		err := op()
		if errors.Is(err, remote.ErrUnknownResource) ||
			errors.Is(err, remote.ErrNotFound) ||
			errors.Is(err, remote.ErrMalformed) {
			return retry.Permanent(err)
		}
		return err
	})
}

// Get returns the collection for resource. Failures are logged and give an
// empty collection.
func (f *Facade) Get(ctx context.Context, resource string) []models.Record {
	if records, ok := f.cache.Get(resource); ok {
		return records
	}

	// a miss is shared by concurrent callers, so one caller going away must
	// not cut the read short for the rest
	v, _, _ := f.group.Do(resource, func() (any, error) {
		return f.load(context.WithoutCancel(ctx), resource), nil
	})
	return models.CloneRecords(v.([]models.Record))
}

func (f *Facade) load(ctx context.Context, resource string) []models.Record {
	version := f.cache.Version()

	var records []models.Record
	if f.remoteReady() {
		err := f.call(ctx, func() error {
			var err error
			records, err = f.remote.List(ctx, resource, remote.Query{})
			return err
		})
		if err != nil {
			remoteErrorsTotal.WithLabelValues("list").Inc()
			f.logger.Warn("remote read failed, using local fallback",
				zap.String("resource", resource),
				zap.Error(err))
			records = nil
		}
	}

	if len(records) == 0 {
		local, err := f.local.Load(ctx, resource)
		switch {
		case err != nil:
			f.logger.Error("local fallback read failed",
				zap.String("resource", resource),
				zap.Error(err))
		case len(local) > 0:
			fallbacksTotal.WithLabelValues(resource).Inc()
			records = local
		}
	}

	if records == nil {
		records = []models.Record{}
	}
	// a write that landed while we were reading has already invalidated the
	// entry; caching what we read would resurrect pre-write data
	if f.cache.Version() == version {
		f.cache.Set(resource, records)
	}
	return records
}

// Save replaces the whole collection on the remote backend and in the local
// store. Records without an id get one first. It reports whether at least
// one of them persisted the collection.
func (f *Facade) Save(ctx context.Context, resource string, records []models.Record) bool {
	records = models.CloneRecords(records)
	if records == nil {
		records = []models.Record{}
	}
	// both stores must hold the same ids, or deletes miss the local copy
	for i, rec := range records {
		if rec == nil {
			rec = models.Record{}
			records[i] = rec
		}
		if rec.ID() == "" {
			rec[models.FieldID] = f.newID()
		}
	}

	remoteOK := false
	if f.remoteReady() {
		// delete-all then insert-all; retried as a pair so a retry never
		// appends to a half-written collection
		err := f.call(ctx, func() error {
			if err := f.remote.DeleteAll(ctx, resource); err != nil {
				return fmt.Errorf("delete all: %w", err)
			}
			return f.remote.InsertAll(ctx, resource, records)
		})
		if err != nil {
			remoteErrorsTotal.WithLabelValues("save").Inc()
			f.logger.Error("remote save failed",
				zap.String("resource", resource),
				zap.Int("records", len(records)),
				zap.Error(err))
		} else {
			remoteOK = true
		}
	}

	localOK := true
	if err := f.local.Store(ctx, resource, records); err != nil {
		localOK = false
		f.logger.Error("local fallback write failed",
			zap.String("resource", resource),
			zap.Error(err))
	}

	version := f.cache.Invalidate(resource)
	if !remoteOK && !localOK {
		return false
	}

	f.registry.Publish(events.Event{
		Resource: resource,
		Kind:     events.KindSaved,
		Version:  version,
	})
	return true
}

// Submit validates rec and inserts it remotely. Invalid records are rejected
// before any backend is contacted.
func (f *Facade) Submit(ctx context.Context, resource string, rec models.Record) SubmitResult {
	if !models.IsResource(resource) {
		return SubmitResult{Err: fmt.Errorf("%w: %s", remote.ErrUnknownResource, resource)}
	}
	rule := f.rules[resource]

	rec = rec.Clone()
	if rec == nil {
		rec = models.Record{}
	}
	if err := rule.Validate(rec); err != nil {
		return SubmitResult{Err: err}
	}
	for field, value := range rule.Defaults {
		if rec.IsBlank(field) {
			rec[field] = value
		}
	}
	if rec.IsBlank(models.FieldCreatedAt) {
		rec[models.FieldCreatedAt] = f.now().UTC().Format(time.RFC3339)
	}

	if !f.remoteReady() && f.Recheck(ctx) != ModeRemote {
		return SubmitResult{Err: ErrRemoteUnavailable}
	}

	var saved models.Record
	insert := func() error {
		var err error
		saved, err = f.remote.Insert(ctx, resource, rec)
		return err
	}

	err := f.call(ctx, insert)
	if err != nil && rule.RetrySubmit && ctx.Err() == nil {
		f.logger.Warn("submission failed, retrying once",
			zap.String("resource", resource),
			zap.Error(err))
		err = insert()
	}
	if err != nil {
		remoteErrorsTotal.WithLabelValues("insert").Inc()
		f.logger.Error("submission failed",
			zap.String("resource", resource),
			zap.Error(err))
		return SubmitResult{Err: fmt.Errorf("%w: %w", ErrSubmitFailed, err)}
	}

	version := f.cache.Invalidate(resource)
	f.registry.Publish(events.Event{
		Resource: resource,
		Kind:     events.KindCreated,
		Version:  version,
		RecordID: saved.ID(),
		Record:   saved.Clone(),
	})
	return SubmitResult{Success: true, Record: saved}
}

// Delete removes one record from the remote backend and, best effort, from
// the local collection.
func (f *Facade) Delete(ctx context.Context, resource, id string) error {
	if !f.remoteReady() && f.Recheck(ctx) != ModeRemote {
		return ErrRemoteUnavailable
	}

	err := f.call(ctx, func() error {
		return f.remote.Delete(ctx, resource, id)
	})
	if err != nil {
		if !errors.Is(err, remote.ErrNotFound) {
			remoteErrorsTotal.WithLabelValues("delete").Inc()
			f.logger.Error("remote delete failed",
				zap.String("resource", resource),
				zap.String("id", id),
				zap.Error(err))
		}
		return err
	}

	f.dropLocal(ctx, resource, id)

	version := f.cache.Invalidate(resource)
	f.registry.Publish(events.Event{
		Resource: resource,
		Kind:     events.KindDeleted,
		Version:  version,
		RecordID: id,
	})
	return nil
}

func (f *Facade) dropLocal(ctx context.Context, resource, id string) {
	records, err := f.local.Load(ctx, resource)
	if err != nil || records == nil {
		return
	}
	kept := slices.DeleteFunc(records, func(r models.Record) bool {
		return r.ID() == id
	})
	if err := f.local.Store(ctx, resource, kept); err != nil {
		f.logger.Warn("local fallback delete failed",
			zap.String("resource", resource),
			zap.String("id", id),
			zap.Error(err))
	}
}

// Count is a head-only count on the remote backend. The bool is false when
// no count could be obtained.
func (f *Facade) Count(ctx context.Context, resource, field, value string) (int64, bool) {
	if !f.remoteReady() {
		return 0, false
	}

	var n int64
	err := f.call(ctx, func() error {
		var err error
		n, err = f.remote.Count(ctx, resource, field, value)
		return err
	})
	if err != nil {
		remoteErrorsTotal.WithLabelValues("count").Inc()
		f.logger.Warn("remote count failed",
			zap.String("resource", resource),
			zap.Error(err))
		return 0, false
	}
	return n, true
}

// List runs a filtered, ordered read against the remote backend without
// touching the cache. Without the remote backend the query is applied to
// the collection Get returns.
func (f *Facade) List(ctx context.Context, resource string, q remote.Query) []models.Record {
	if f.remoteReady() {
		var records []models.Record
		err := f.call(ctx, func() error {
			var err error
			records, err = f.remote.List(ctx, resource, q)
			return err
		})
		if err == nil {
			return records
		}
		remoteErrorsTotal.WithLabelValues("list").Inc()
		f.logger.Warn("remote query failed, filtering locally",
			zap.String("resource", resource),
			zap.Error(err))
	}
	return Filter(f.Get(ctx, resource), q)
}

// Filter applies q to records in memory with the same semantics as the
// remote backend: equality on the text form of a field, stable ordering,
// records without the order field last.
func Filter(records []models.Record, q remote.Query) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if q.Field != "" && r.String(q.Field) != q.Value {
			continue
		}
		out = append(out, r)
	}

	if q.OrderBy != "" {
		slices.SortStableFunc(out, func(a, b models.Record) int {
			av, bv := a.String(q.OrderBy), b.String(q.OrderBy)
			switch {
			case av == bv:
				return 0
			case av == "":
				return 1
			case bv == "":
				return -1
			}
			if q.Desc {
				return strings.Compare(bv, av)
			}
			return strings.Compare(av, bv)
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}
