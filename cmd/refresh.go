package cmd

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/logger"
)

const defaultSchedule = "0 */6 * * *" // every six hours

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Collect jobs from all configured sources and warm the cache",
	Run: func(cmd *cobra.Command, _ []string) {
		refresh(cmd)
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().Bool("once", false, "run a single collection round and exit")
}

func refresh(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	eng, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	round := func() {
		count, failures, err := eng.Refresh(ctx)
		if err != nil {
			logger.Error("refresh round failed", zap.Error(err))
			return
		}
		logger.Info("cache warmed", zap.Int("jobs", count), zap.Int("failures", len(failures)))
		for _, f := range failures {
			logger.Warn("source failed", zap.String("source", f.Source), zap.String("kind", string(f.Kind)))
		}
	}

	if once, _ := cmd.Flags().GetBool("once"); once {
		round()
		return
	}

	schedule := defaultSchedule
	if config.Refresh != nil && config.Refresh.Schedule != "" {
		schedule = config.Refresh.Schedule
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, round); err != nil {
		logger.Fatal("invalid refresh schedule", zap.String("schedule", schedule), zap.Error(err))
	}

	logger.Info("refresh scheduler started", zap.String("schedule", schedule))
	round()
	c.Run()
}
