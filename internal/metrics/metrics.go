// Package metrics exposes Prometheus counters for storage operations.
//
// All recording methods accept a nil receiver and do nothing, so providers
// can be built without metrics.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "objfs"

// Operation labels.
const (
	OpList   = "list"
	OpRead   = "read"
	OpDu     = "du"
	OpRemove = "remove"
	OpExists = "exists"
	OpBucket = "bucket"
)

// Metrics holds the storage counters.
type Metrics struct {
	listPages     prometheus.Counter
	objectsListed prometheus.Counter
	bytesRead     prometheus.Counter
	removes       prometheus.Counter
	errors        *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		listPages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_pages_total",
			Help:      "Listing pages fetched from the storage backend.",
		}),
		objectsListed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objects_listed_total",
			Help:      "Objects yielded by listings after pattern filtering.",
		}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Decompressed bytes returned to readers.",
		}),
		removes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removes_total",
			Help:      "Objects deleted.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed operations by operation and error code.",
		}, []string{"op", "code"}),
	}

	for _, c := range []prometheus.Collector{m.listPages, m.objectsListed, m.bytesRead, m.removes, m.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ListPage records a fetched listing page.
func (m *Metrics) ListPage() {
	if m == nil {
		return
	}
	m.listPages.Inc()
}

// ObjectListed records an object yielded by a listing.
func (m *Metrics) ObjectListed() {
	if m == nil {
		return
	}
	m.objectsListed.Inc()
}

// BytesRead adds n decompressed bytes.
func (m *Metrics) BytesRead(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesRead.Add(float64(n))
}

// Removed records a deleted object.
func (m *Metrics) Removed() {
	if m == nil {
		return
	}
	m.removes.Inc()
}

// Error records a failed operation.
func (m *Metrics) Error(op, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op, code).Inc()
}

// WriteText writes every metric gathered by g in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
