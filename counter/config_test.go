package counter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biswassri/kas-broker-plugins/constants"
)

func TestParseConfig_MaxPartitions(t *testing.T) {
	tests := []struct {
		name       string
		properties map[string]any
		expected   int
	}{
		{
			name:       "missing falls back to unbounded",
			properties: map[string]any{},
			expected:   -1,
		},
		{
			name:       "nil properties fall back to unbounded",
			properties: nil,
			expected:   -1,
		},
		{
			name:       "non-numeric falls back to unbounded",
			properties: map[string]any{constants.MaxPartitions: "not-a-number"},
			expected:   -1,
		},
		{
			name:       "numeric string is parsed",
			properties: map[string]any{constants.MaxPartitions: "1000"},
			expected:   1000,
		},
		{
			name:       "integer is used as-is",
			properties: map[string]any{constants.MaxPartitions: 42},
			expected:   42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := ParseConfig(tt.properties)
			assert.Equal(t, tt.expected, config.MaxPartitions)
		})
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	config := ParseConfig(map[string]any{})

	assert.Equal(t, constants.DefaultPrivateTopicPrefix, config.PrivateTopicPrefix)
	assert.Equal(t, constants.DefaultTimeoutSeconds, config.TimeoutSeconds)
	assert.Equal(t, constants.DefaultScheduleIntervalSeconds, config.ScheduleIntervalSeconds)
	assert.Equal(t, 10*time.Second, config.Timeout())
	assert.Equal(t, 15*time.Second, config.ScheduleInterval())
}

func TestParseConfig_Overrides(t *testing.T) {
	config := ParseConfig(map[string]any{
		constants.BootstrapServers:        "localhost:9092",
		constants.PrivateTopicPrefix:      "__internal_",
		constants.TimeoutSeconds:          3,
		constants.ScheduleIntervalSeconds: 1,
	})

	assert.Equal(t, "localhost:9092", config.BootstrapServers)
	assert.Equal(t, "__internal_", config.PrivateTopicPrefix)
	assert.Equal(t, 3*time.Second, config.Timeout())
	assert.Equal(t, time.Second, config.ScheduleInterval())
}

func TestConfigValidate_BackfillsDefaults(t *testing.T) {
	config := &Config{
		MaxPartitions:           1000,
		PrivateTopicPrefix:      "",
		TimeoutSeconds:          0,
		ScheduleIntervalSeconds: -5,
	}

	require.NoError(t, config.Validate())
	assert.Equal(t, constants.DefaultPrivateTopicPrefix, config.PrivateTopicPrefix)
	assert.Equal(t, constants.DefaultTimeoutSeconds, config.TimeoutSeconds)
	assert.Equal(t, constants.DefaultScheduleIntervalSeconds, config.ScheduleIntervalSeconds)
}
