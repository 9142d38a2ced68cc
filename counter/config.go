package counter

import (
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/biswassri/kas-broker-plugins/constants"
	"github.com/biswassri/kas-broker-plugins/utils"
)

// Config carries the partition counter settings parsed from broker properties.
type Config struct {
	MaxPartitions           int
	BootstrapServers        string
	PrivateTopicPrefix      string `validate:"required"`
	TimeoutSeconds          int    `validate:"gt=0"`
	ScheduleIntervalSeconds int    `validate:"gt=0"`
}

// ParseConfig reads the recognized keys out of a broker property map. A
// missing or malformed value falls back to its default; in particular a bad
// max.partitions means "unbounded", never an error.
func ParseConfig(properties map[string]any) *Config {
	v := viper.New()
	v.SetDefault(constants.MaxPartitions, constants.DefaultMaxPartitions)
	v.SetDefault(constants.PrivateTopicPrefix, constants.DefaultPrivateTopicPrefix)
	v.SetDefault(constants.TimeoutSeconds, constants.DefaultTimeoutSeconds)
	v.SetDefault(constants.ScheduleIntervalSeconds, constants.DefaultScheduleIntervalSeconds)
	for key, value := range properties {
		v.Set(key, value)
	}

	return &Config{
		MaxPartitions:           intOrDefault(v.Get(constants.MaxPartitions), constants.DefaultMaxPartitions),
		BootstrapServers:        v.GetString(constants.BootstrapServers),
		PrivateTopicPrefix:      v.GetString(constants.PrivateTopicPrefix),
		TimeoutSeconds:          intOrDefault(v.Get(constants.TimeoutSeconds), constants.DefaultTimeoutSeconds),
		ScheduleIntervalSeconds: intOrDefault(v.Get(constants.ScheduleIntervalSeconds), constants.DefaultScheduleIntervalSeconds),
	}
}

func (c *Config) Validate() error {
	if c.PrivateTopicPrefix == "" {
		c.PrivateTopicPrefix = constants.DefaultPrivateTopicPrefix
	}

	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = constants.DefaultTimeoutSeconds
	}

	if c.ScheduleIntervalSeconds <= 0 {
		c.ScheduleIntervalSeconds = constants.DefaultScheduleIntervalSeconds
	}

	return utils.Validate(c)
}

// Timeout bounds a single list or describe call against the cluster.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ScheduleInterval is the fixed delay between the end of one poll and the
// start of the next.
func (c *Config) ScheduleInterval() time.Duration {
	return time.Duration(c.ScheduleIntervalSeconds) * time.Second
}

func intOrDefault(value any, fallback int) int {
	parsed, err := cast.ToIntE(value)
	if err != nil {
		return fallback
	}
	return parsed
}
