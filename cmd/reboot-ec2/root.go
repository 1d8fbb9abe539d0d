package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jordangarrison/aws-tools/internal/awsutil"
	"github.com/jordangarrison/aws-tools/internal/config"
	"github.com/jordangarrison/aws-tools/internal/ec2"
	"github.com/jordangarrison/aws-tools/internal/logger"
	"github.com/jordangarrison/aws-tools/internal/reboot"
)

type contextKey string

const configKey = contextKey("config")

const defaultRegion = "us-west-2"

const (
	exitAPIError    = 1
	exitResolution  = 2
	exitWaitTimeout = 3
)

var (
	instanceID string
	name       string
	wait       bool
	timeoutSec int
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:          "reboot-ec2",
	Short:        "Reboot an EC2 instance by ID or Name tag",
	Long:         "A tool to reboot a single EC2 instance, found by instance ID or Name tag, with an optional wait for status checks.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration.
		cfg := cmd.Context().Value(configKey).(*config.Config)

		// Set up logger.
		logInstance := logger.SetupLogger("reboot-ec2", &cfg.Logging)

		if cmd.Flags().Changed("timeout") {
			cfg.Reboot.WaitTimeout = time.Duration(timeoutSec) * time.Second
		}
		if cfg.AWS.Region == "" {
			cfg.AWS.Region = defaultRegion
		}

		// Create a context with cancellation for graceful shutdown.
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Listen for OS signals.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			logInstance.Info().Msgf("Received signal: %v", sig)
			cancel()
		}()

		awsCfg, err := awsutil.LoadConfig(ctx, &cfg.AWS)
		if err != nil {
			return &exitError{code: exitAPIError, err: err}
		}
		service := ec2.NewService(awsec2.NewFromConfig(awsCfg), logInstance)
		engine := reboot.NewEngine(logInstance, &cfg.Reboot, service, dryRun, wait)

		target := reboot.Target{InstanceID: instanceID, Name: name}
		if err := engine.Run(ctx, target); err != nil {
			return &exitError{code: exitCode(err), err: err}
		}
		logInstance.Info().Msg("Reboot operation completed successfully")
		return nil
	},
}

// exitError carries the process exit code for a failed run.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// exitCode maps engine failures onto the process exit codes scripts key on.
func exitCode(err error) int {
	var notFound *ec2.InstanceNotFoundError
	var ambiguous *ec2.AmbiguousNameError
	var timedOut *reboot.WaitTimeoutError
	switch {
	case errors.As(err, &notFound), errors.As(err, &ambiguous):
		return exitResolution
	case errors.As(err, &timedOut):
		return exitWaitTimeout
	default:
		return exitAPIError
	}
}

func init() {
	rootCmd.Flags().StringVar(&instanceID, "instance-id", "", "EC2 instance ID to reboot")
	rootCmd.Flags().StringVar(&name, "name", "", "EC2 instance Name tag to search for")
	rootCmd.Flags().BoolVar(&wait, "wait", false, "wait for the instance to pass all status checks after reboot")
	rootCmd.Flags().IntVar(&timeoutSec, "timeout", 600, "seconds to wait for status checks (with --wait)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without making changes")
	rootCmd.Flags().Duration("poll-interval", 15*time.Second, "how often to check instance status (with --wait)")
	viper.BindPFlag("reboot.poll_interval", rootCmd.Flags().Lookup("poll-interval"))
	rootCmd.MarkFlagsOneRequired("instance-id", "name")
	rootCmd.MarkFlagsMutuallyExclusive("instance-id", "name")

	rootCmd.PersistentFlags().String("region", "", "AWS region (default: AWS_REGION env var or us-west-2)")
	rootCmd.PersistentFlags().String("profile", "", "AWS profile to use")
	rootCmd.PersistentFlags().String("log-level", "INFO", "set log level (e.g. INFO, DEBUG, WARN)")
	viper.BindPFlag("aws.region", rootCmd.PersistentFlags().Lookup("region"))
	viper.BindPFlag("aws.profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitResolution
	}
	return 0
}
