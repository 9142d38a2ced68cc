package counter

import (
	"fmt"
	"sync"

	"github.com/biswassri/kas-broker-plugins/constants"
	kafkapkg "github.com/biswassri/kas-broker-plugins/pkg/kafka"
	"github.com/biswassri/kas-broker-plugins/utils/logger"
)

// AdminFactory builds the metadata admin client for a freshly constructed
// counter instance.
type AdminFactory func(config *Config) (kafkapkg.Admin, error)

// Registry hands out a shared PartitionCounter and tracks how many holders
// are still attached. Each caller owns its registry explicitly instead of
// going through process-global state, so tests can run isolated instances.
type Registry struct {
	mu       sync.Mutex
	instance *PartitionCounter
	newAdmin AdminFactory
}

type RegistryOption func(*Registry)

// WithAdminFactory overrides how the registry builds admin clients.
func WithAdminFactory(factory AdminFactory) RegistryOption {
	return func(r *Registry) {
		r.newAdmin = factory
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	registry := &Registry{
		newAdmin: func(config *Config) (kafkapkg.Admin, error) {
			return kafkapkg.NewAdmin(config.BootstrapServers)
		},
	}
	for _, opt := range opts {
		opt(registry)
	}
	return registry
}

// Acquire returns the shared counter, constructing it and starting its poller
// on first use. Every successful Acquire must be paired with one Release.
func (r *Registry) Acquire(properties map[string]any) (*PartitionCounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.instance == nil {
		config := ParseConfig(properties)
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed: %s", err)
		}

		admin, err := r.newAdmin(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create admin client: %s", err)
		}

		r.instance = newPartitionCounter(config, admin)
		logger.Infof("created partition counter %s (max partitions: %d)", r.instance.id, config.MaxPartitions)
	}

	r.instance.start()
	r.instance.handles.Add(1)
	return r.instance, nil
}

// Release detaches one holder. When the last holder detaches the counter is
// torn down: the in-flight poll is cancelled and the admin client closed
// within a bounded grace period. Releasing more times than acquired is a
// logged no-op; the holder count never goes negative.
func (r *Registry) Release(counter *PartitionCounter) {
	if counter == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if counter.handles.Load() <= 0 {
		logger.Warnf("partition counter %s: release without a matching acquire", counter.id)
		return
	}

	if counter.handles.Add(-1) > 0 {
		return
	}

	counter.stop()
	if err := counter.admin.Close(constants.AdminCloseGrace); err != nil {
		logger.Warnf("partition counter %s: %s", counter.id, err)
	}

	if r.instance == counter {
		r.instance = nil
	}
	logger.Infof("partition counter %s shut down", counter.id)
}

// With runs fn against an acquired counter and releases it on every exit
// path, including fn returning an error.
func (r *Registry) With(properties map[string]any, fn func(*PartitionCounter) error) error {
	instance, err := r.Acquire(properties)
	if err != nil {
		return err
	}
	defer r.Release(instance)

	return fn(instance)
}
