package counter

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/biswassri/kas-broker-plugins/constants"
	kafkapkg "github.com/biswassri/kas-broker-plugins/pkg/kafka"
	"github.com/biswassri/kas-broker-plugins/utils"
	"github.com/biswassri/kas-broker-plugins/utils/logger"
)

// PartitionCounter caches the cluster-wide partition total, refreshed by a
// background poller on a fixed-delay schedule. Instances are shared between
// holders; obtain and release them through a Registry.
type PartitionCounter struct {
	id     string
	config *Config
	admin  kafkapkg.Admin

	existingPartitionCount atomic.Int64
	handles                atomic.Int32

	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

func newPartitionCounter(config *Config, admin kafkapkg.Admin) *PartitionCounter {
	return &PartitionCounter{
		id:     uuid.NewString(),
		config: config,
		admin:  admin,
	}
}

// GetExistingPartitionCount returns the last successfully polled total. It is
// zero until the first poll succeeds and never blocks on the cluster.
func (p *PartitionCounter) GetExistingPartitionCount() int {
	return int(p.existingPartitionCount.Load())
}

// GetMaxPartitions returns the configured limit, -1 when unbounded.
func (p *PartitionCounter) GetMaxPartitions() int {
	return p.config.MaxPartitions
}

// Handles returns the number of active holders.
func (p *PartitionCounter) Handles() int {
	return int(p.handles.Load())
}

// start launches the poll loop. Repeated calls are no-ops; the caller holds
// the registry lock.
func (p *PartitionCounter) start() {
	if p.pollCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.pollCancel = cancel
	p.pollDone = make(chan struct{})
	go p.run(ctx)
	logger.Debugf("partition counter %s: poller started (interval: %s)", p.id, p.config.ScheduleInterval())
}

// stop cancels any in-flight poll and waits for the loop to exit.
func (p *PartitionCounter) stop() {
	if p.pollCancel == nil {
		return
	}

	p.pollCancel()
	<-p.pollDone
}

// run polls immediately, then with a fixed delay between the end of one
// execution and the start of the next, so two polls can never overlap.
func (p *PartitionCounter) run(ctx context.Context) {
	defer close(p.pollDone)

	interval := p.config.ScheduleInterval()
	for {
		p.poll(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// poll refreshes the cached total once. A failed round keeps the previous
// value; only a fully successful list+describe round replaces it.
func (p *PartitionCounter) poll(ctx context.Context) {
	total, err := p.countExistingPartitions(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Errorf("partition counter %s: failed to count partitions: %s", p.id, err)
		return
	}
	p.existingPartitionCount.Store(int64(total))
}

func (p *PartitionCounter) countExistingPartitions(ctx context.Context) (int, error) {
	listCtx, cancelList := context.WithTimeout(ctx, p.config.Timeout())
	defer cancelList()
	names, err := p.admin.ListTopics(listCtx)
	if err != nil {
		return 0, err
	}

	countable := make([]string, 0, len(names))
	for _, name := range names {
		if !p.isPrivateTopic(name) {
			countable = append(countable, name)
		}
	}

	describeCtx, cancelDescribe := context.WithTimeout(ctx, p.config.Timeout())
	defer cancelDescribe()
	counts, err := p.admin.DescribeTopics(describeCtx, countable)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, partitions := range counts {
		total += partitions
	}
	return total, nil
}

func (p *PartitionCounter) isPrivateTopic(name string) bool {
	return strings.HasPrefix(name, p.config.PrivateTopicPrefix) ||
		utils.ExistInArray(constants.InternalTopics, name)
}
