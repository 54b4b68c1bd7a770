package shm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/srediag/shmopen/internal/logging"
	"github.com/srediag/shmopen/pkg/audit"
)

const (
	instrumentationName = "github.com/srediag/shmopen/pkg/shm"
	defaultWorkers      = 4
	resultOK            = "ok"
)

// Auditor receives one event per Namespace operation.
type Auditor interface {
	Record(e audit.Event)
}

// Namespace is an instrumented view of the shared-memory namespace that
// remembers which names it created, so they can be unlinked on shutdown.
// It is safe for concurrent use.
type Namespace struct {
	log        logrus.FieldLogger
	tracer     trace.Tracer
	ops        metric.Int64Counter
	metrics    *Metrics
	auditor    Auditor
	newBackOff func() backoff.BackOff
	workers    int

	optErr    error
	owned     cmap.ConcurrentMap[string, time.Time]
	pool      *ants.Pool
	closeOnce sync.Once
	closeErr  error
}

// Option configures a Namespace.
type Option func(*Namespace)

func WithLogger(l logrus.FieldLogger) Option { return func(n *Namespace) { n.log = l } }

func WithTracer(t trace.Tracer) Option { return func(n *Namespace) { n.tracer = t } }

func WithMetrics(m *Metrics) Option { return func(n *Namespace) { n.metrics = m } }

func WithAuditor(a Auditor) Option { return func(n *Namespace) { n.auditor = a } }

// WithWorkers bounds how many unlinks UnlinkAll runs at once.
func WithWorkers(w int) Option { return func(n *Namespace) { n.workers = w } }

// WithBackOff sets the policy CreateUnique uses between name collisions.
// The function is called once per CreateUnique.
func WithBackOff(f func() backoff.BackOff) Option { return func(n *Namespace) { n.newBackOff = f } }

// WithMeter sets the otel meter; a nil meter keeps the noop one.
func WithMeter(m metric.Meter) Option {
	return func(n *Namespace) {
		if m == nil {
			return
		}
		c, err := m.Int64Counter("shm.operations",
			metric.WithDescription("Shared memory namespace operations."),
		)
		if err != nil {
			n.optErr = errors.Join(n.optErr, fmt.Errorf("operations counter: %w", err))
			return
		}
		n.ops = c
	}
}

func defaultBackOff() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(10*time.Millisecond), 5)
}

// NewNamespace returns a Namespace. Without options it logs nowhere and
// its telemetry is noop.
func NewNamespace(opts ...Option) (*Namespace, error) {
	ops, _ := metricnoop.NewMeterProvider().Meter(instrumentationName).Int64Counter("shm.operations")
	n := &Namespace{
		log:        logging.Discard(),
		tracer:     tracenoop.NewTracerProvider().Tracer(instrumentationName),
		ops:        ops,
		newBackOff: defaultBackOff,
		workers:    defaultWorkers,
		owned:      cmap.New[time.Time](),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.optErr != nil {
		return nil, n.optErr
	}
	if n.workers < 1 {
		return nil, fmt.Errorf("namespace workers must be positive, got %d", n.workers)
	}
	pool, err := ants.NewPool(n.workers)
	if err != nil {
		return nil, fmt.Errorf("unlink pool: %w", err)
	}
	n.pool = pool
	return n, nil
}

// Open forwards to the package Open. The name is tracked as owned only when
// flag contains both Create and Exclusive and the call succeeds, since only
// then is the object known to be this namespace's.
func (n *Namespace) Open(ctx context.Context, name string, flag Flag, perm os.FileMode) (int, error) {
	fd := -1
	err := n.observe(ctx, opOpen, name, func() error {
		var err error
		fd, err = Open(name, flag, perm)
		return err
	})
	if err == nil && flag&(Create|Exclusive) == Create|Exclusive {
		n.track(name)
	}
	return fd, err
}

// Unlink forwards to the package Unlink and stops tracking name on success.
func (n *Namespace) Unlink(ctx context.Context, name string) error {
	err := n.observe(ctx, opUnlink, name, func() error {
		return Unlink(name)
	})
	if err == nil {
		n.untrack(name)
	}
	return err
}

// CreateUnique exclusively creates a fresh name under prefix. A collision
// draws a new random suffix; the backoff policy bounds how many times.
func (n *Namespace) CreateUnique(ctx context.Context, prefix string, perm os.FileMode) (string, int, error) {
	var (
		name string
		fd   = -1
	)
	op := func() error {
		name = ShortName(prefix, randomSuffix())
		var err error
		fd, err = n.Open(ctx, name, Create|Exclusive|ReadWrite, perm)
		if err == nil || KindOf(err) == KindAlreadyExists {
			return err
		}
		return backoff.Permanent(err)
	}
	if err := backoff.Retry(op, backoff.WithContext(n.newBackOff(), ctx)); err != nil {
		return "", -1, err
	}
	return name, fd, nil
}

// Owned returns the tracked names, sorted.
func (n *Namespace) Owned() []string {
	names := n.owned.Keys()
	sort.Strings(names)
	return names
}

// UnlinkAll unlinks every owned name concurrently. A name already gone is
// reported as unlinked: its operation is recorded with result ok.
func (n *Namespace) UnlinkAll(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	for _, name := range n.Owned() {
		name := name // per-iteration copy; go.mod targets go1.21 loop semantics
		wg.Add(1)
		err := n.pool.Submit(func() {
			defer wg.Done()
			if err := n.unlinkOwned(ctx, name); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("schedule unlink %s: %w", name, err))
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Close unlinks every owned name and stops the worker pool.
func (n *Namespace) Close() error {
	n.closeOnce.Do(func() {
		n.closeErr = n.UnlinkAll(context.Background())
		n.pool.Release()
	})
	return n.closeErr
}

func (n *Namespace) unlinkOwned(ctx context.Context, name string) error {
	err := n.observe(ctx, opUnlink, name, func() error {
		if err := Unlink(name); KindOf(err) != KindNotFound {
			return err
		}
		return nil
	})
	if err == nil {
		n.untrack(name)
	}
	return err
}

func (n *Namespace) track(name string) {
	n.owned.Set(name, time.Now())
	n.metrics.setOwned(n.owned.Count())
}

func (n *Namespace) untrack(name string) {
	n.owned.Remove(name)
	n.metrics.setOwned(n.owned.Count())
}

func (n *Namespace) observe(ctx context.Context, op, name string, fn func() error) error {
	ctx, span := n.tracer.Start(ctx, spanName(op), trace.WithAttributes(attribute.String("shm.name", name)))
	defer span.End()

	err := fn()
	result := resultOK
	if err != nil {
		result = KindOf(err).String()
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
	}
	n.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("result", result),
	))
	n.metrics.observe(op, result)

	entry := n.log.WithFields(logrus.Fields{"op": op, "name": name})
	if err != nil {
		entry.WithError(err).Warn("shared memory operation failed")
	} else {
		entry.Debug("shared memory operation")
	}
	if n.auditor != nil {
		n.auditor.Record(audit.Event{Op: op, Name: name, Result: result, Err: err, At: time.Now()})
	}
	return err
}

func spanName(op string) string {
	return "shm." + strings.TrimPrefix(op, "shm_")
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
