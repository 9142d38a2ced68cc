package constants

import (
	"time"
)

// Recognized broker properties. The partition counter keys follow the
// custom-authorizer namespace used by the rest of the plugin suite.
const (
	MaxPartitions           = "max.partitions"
	BootstrapServers        = "bootstrap.servers"
	PrivateTopicPrefix      = "strimzi.authorization.custom-authorizer.partition-counter.private-topic-prefix"
	TimeoutSeconds          = "strimzi.authorization.custom-authorizer.partition-counter.timeout-seconds"
	ScheduleIntervalSeconds = "strimzi.authorization.custom-authorizer.partition-counter.schedule-interval-seconds"
)

const (
	// DefaultMaxPartitions disables the partition limit.
	DefaultMaxPartitions           = -1
	DefaultPrivateTopicPrefix      = "__redhat_"
	DefaultTimeoutSeconds          = 10
	DefaultScheduleIntervalSeconds = 15

	// AdminCloseGrace bounds how long a teardown waits on the admin client.
	AdminCloseGrace = 500 * time.Millisecond

	// LogsFolder is the viper key pointing at the directory for rotated log files.
	LogsFolder = "LOGS_FOLDER"
)

// Internal topics that never count toward the user-facing partition total,
// regardless of the configured private prefix.
var InternalTopics = []string{"__consumer_offsets", "__transaction_state"}
