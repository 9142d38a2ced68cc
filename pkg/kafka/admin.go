package kafka

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/biswassri/kas-broker-plugins/utils"
)

// Admin is the slice of cluster metadata capability the partition counter
// consumes: topic listing, per-topic partition counts and a bounded close.
type Admin interface {
	ListTopics(ctx context.Context) ([]string, error)
	DescribeTopics(ctx context.Context, topics []string) (map[string]int, error)
	Close(grace time.Duration) error
}

type admin struct {
	client    *kafka.Client
	transport *kafka.Transport
}

// NewAdmin builds an Admin backed by a kafka-go admin client for the given
// comma separated bootstrap servers.
func NewAdmin(bootstrapServers string) (Admin, error) {
	brokers := utils.SplitAndTrim(bootstrapServers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no brokers found in bootstrap servers %q", bootstrapServers)
	}

	transport := &kafka.Transport{
		Dial: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
	}

	return &admin{
		client:    &kafka.Client{Addr: kafka.TCP(brokers...), Transport: transport},
		transport: transport,
	}, nil
}

func (a *admin) ListTopics(ctx context.Context) ([]string, error) {
	resp, err := a.client.Metadata(ctx, &kafka.MetadataRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %s", err)
	}

	names := make([]string, 0, len(resp.Topics))
	for _, topic := range resp.Topics {
		if topic.Error != nil {
			continue
		}
		names = append(names, topic.Name)
	}
	return names, nil
}

func (a *admin) DescribeTopics(ctx context.Context, topics []string) (map[string]int, error) {
	if len(topics) == 0 {
		return map[string]int{}, nil
	}

	resp, err := a.client.Metadata(ctx, &kafka.MetadataRequest{Topics: topics})
	if err != nil {
		return nil, fmt.Errorf("failed to describe topics: %s", err)
	}
	return partitionCounts(resp.Topics)
}

// partitionCounts maps each described topic to its partition count. A
// topic-level error fails the whole call so a partial sum is never reported.
func partitionCounts(topics []kafka.Topic) (map[string]int, error) {
	counts := make(map[string]int, len(topics))
	for _, topic := range topics {
		if topic.Error != nil {
			return nil, fmt.Errorf("failed to describe topic %s: %s", topic.Name, topic.Error)
		}
		counts[topic.Name] = len(topic.Partitions)
	}
	return counts, nil
}

// Close tears the transport down, giving up after the grace period rather
// than blocking teardown indefinitely.
func (a *admin) Close(grace time.Duration) error {
	done := make(chan struct{})
	go func() {
		a.transport.CloseIdleConnections()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		return fmt.Errorf("admin client close exceeded grace period of %s", grace)
	}
}
