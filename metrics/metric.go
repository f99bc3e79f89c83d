package metrics

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	vm "github.com/VictoriaMetrics/metrics"

	"github.com/safing/jitterpool/config"
)

// PrometheusFormatRequirement is required format defined by prometheus for
// metric and label names.
const (
	prometheusBaseFormt         = "[a-zA-Z_][a-zA-Z0-9_]*"
	PrometheusFormatRequirement = "^" + prometheusBaseFormt + "$"
)

var (
	prometheusFormat = regexp.MustCompile(PrometheusFormatRequirement)

	registry     []Metric
	registryLock sync.RWMutex

	// ErrAlreadyRegistered is returned when a metric with the same ID and
	// labels is registered twice.
	ErrAlreadyRegistered = errors.New("metric already registered")
	// ErrInvalidName is returned for metric or label names that do not
	// match the prometheus format.
	ErrInvalidName = errors.New("invalid metric or label name")
)

// Metric represents one or more metrics.
type Metric interface {
	ID() string
	LabeledID() string
	Opts() *Options
	WritePrometheus(w io.Writer)
}

// Options can be used to set advanced metric settings.
type Options struct {
	// Name defines an optional human readable name for the metric.
	Name string

	// ExpertiseLevel defines the expertise level the metric is meant for.
	ExpertiseLevel uint8
}

type metricBase struct {
	Identifier        string
	Labels            map[string]string
	LabeledIdentifier string
	Options           *Options
	set               *vm.Set
}

func newMetricBase(id string, labels map[string]string, opts Options) (*metricBase, error) {
	// Check formats.
	if !prometheusFormat.MatchString(id) {
		return nil, fmt.Errorf("%w: metric name %q", ErrInvalidName, id)
	}
	for labelName := range labels {
		if !prometheusFormat.MatchString(labelName) {
			return nil, fmt.Errorf("%w: label name %q", ErrInvalidName, labelName)
		}
	}

	if opts.ExpertiseLevel == 0 {
		opts.ExpertiseLevel = config.ExpertiseLevelUser
	}

	return &metricBase{
		Identifier:        id,
		Labels:            labels,
		LabeledIdentifier: buildLabeledID(id, labels),
		Options:           &opts,
		set:               vm.NewSet(),
	}, nil
}

// ID returns the given ID of the metric.
func (m *metricBase) ID() string {
	return m.Identifier
}

// LabeledID returns the Prometheus-compatible labeled ID of the metric.
func (m *metricBase) LabeledID() string {
	return m.LabeledIdentifier
}

// Opts returns the metric options. They may not be modified.
func (m *metricBase) Opts() *Options {
	return m.Options
}

// WritePrometheus writes the metric in the prometheus format to the given writer.
func (m *metricBase) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}

func buildLabeledID(metricID string, labels map[string]string) string {
	if len(labels) == 0 {
		return metricID
	}

	// Sort labels to get a stable ID.
	labelNames := make([]string, 0, len(labels))
	for name := range labels {
		labelNames = append(labelNames, name)
	}
	sort.Strings(labelNames)

	pairs := make([]string, 0, len(labels))
	for _, name := range labelNames {
		pairs = append(pairs, fmt.Sprintf("%s=%q", name, labels[name]))
	}
	return metricID + "{" + strings.Join(pairs, ",") + "}"
}

func register(m Metric) error {
	registryLock.Lock()
	defer registryLock.Unlock()

	// Check if metric ID is already registered.
	for _, registeredMetric := range registry {
		if m.LabeledID() == registeredMetric.LabeledID() {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, m.LabeledID())
		}
	}

	registry = append(registry, m)
	sort.Slice(registry, func(i, j int) bool {
		return registry[i].LabeledID() < registry[j].LabeledID()
	})

	return nil
}
