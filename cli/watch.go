package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/biswassri/kas-broker-plugins/counter"
	"github.com/biswassri/kas-broker-plugins/utils"
	"github.com/biswassri/kas-broker-plugins/utils/backoff"
	"github.com/biswassri/kas-broker-plugins/utils/logger"
)

var reportIntervalSeconds int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Acquire a partition counter and log the cached total until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configPath == "" {
			return fmt.Errorf("--config is required")
		}

		properties := map[string]any{}
		if err := utils.UnmarshalFile(configPath, &properties); err != nil {
			return err
		}

		registry := counter.NewRegistry()
		var partitionCounter *counter.PartitionCounter
		err := backoff.Retry(3, time.Second, func() error {
			var acquireErr error
			partitionCounter, acquireErr = registry.Acquire(properties)
			return acquireErr
		}, func(error) bool { return true })
		if err != nil {
			return fmt.Errorf("failed to acquire partition counter: %s", err)
		}
		defer registry.Release(partitionCounter)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		interval := utils.Ternary(reportIntervalSeconds > 0, reportIntervalSeconds, 15).(int)
		ticker := time.NewTicker(time.Duration(interval) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("shutting down partition watcher")
				return nil
			case <-ticker.C:
				logger.Infof("existing partitions: %d (max: %d)",
					partitionCounter.GetExistingPartitionCount(), partitionCounter.GetMaxPartitions())
			}
		}
	},
}

func init() {
	watchCmd.Flags().IntVarP(&reportIntervalSeconds, "report-interval", "", 15, "(Optional) Seconds between reported counts")
}
