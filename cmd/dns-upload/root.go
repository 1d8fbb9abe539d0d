package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsroute53 "github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jordangarrison/aws-tools/internal/awsutil"
	"github.com/jordangarrison/aws-tools/internal/config"
	"github.com/jordangarrison/aws-tools/internal/dns"
	"github.com/jordangarrison/aws-tools/internal/logger"
	"github.com/jordangarrison/aws-tools/internal/route53"
	"github.com/jordangarrison/aws-tools/internal/upload"
)

type contextKey string

const configKey = contextKey("config")

const (
	exitRowsFailed = 1
	exitFileError  = 2
)

var (
	dryRun         bool
	createTemplate bool
)

var rootCmd = &cobra.Command{
	Use:          "dns-upload [csv_file]",
	Short:        "Bulk upload DNS records to Route 53",
	Long:         "A tool to bulk upload DNS records from a CSV file into Route 53 hosted zones.",
	Args:         cobra.MaximumNArgs(1),
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
		logInstance := logger.SetupLogger("dns-upload", &cfg.Logging)

		if createTemplate {
			path := cfg.Upload.TemplateFile
			if err := dns.WriteTemplate(path); err != nil {
				return &exitError{code: exitFileError, err: err}
			}
			logInstance.Info().Msgf("Created template CSV at %s", path)
			logInstance.Info().Msg("Fill the template with your records and run the upload again")
			return nil
		}

		if len(args) == 0 {
			return &exitError{code: exitFileError, err: errors.New("no CSV file specified, use --create-template to create one")}
		}

		f, err := os.Open(args[0])
		if err != nil {
			return &exitError{code: exitFileError, err: fmt.Errorf("error opening %s: %w", args[0], err)}
		}
		defer f.Close()

		rows, rowErrs, err := dns.ReadRows(f)
		if err != nil {
			return &exitError{code: exitFileError, err: err}
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

		// A dry run previews every change locally, so it needs no AWS
		// client and works without credentials.
		var store *route53.Store
		if !dryRun {
			awsCfg, err := awsutil.LoadConfig(ctx, &cfg.AWS)
			if err != nil {
				return &exitError{code: exitRowsFailed, err: err}
			}
			store = route53.NewStore(awsroute53.NewFromConfig(awsCfg), logInstance)
		}

		engine := upload.NewEngine(logInstance, &cfg.Upload, store, dryRun)
		summary, err := engine.Run(ctx, rows, rowErrs)
		if err != nil {
			return &exitError{code: exitRowsFailed, err: err}
		}
		if summary.Failed() > 0 {
			return &exitError{code: exitRowsFailed, err: errors.New(summary.Render())}
		}
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

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without making changes")
	rootCmd.Flags().BoolVar(&createTemplate, "create-template", false, "create a template CSV file and exit")
	rootCmd.Flags().String("template-file", "dns_records_template.csv", "path for --create-template output")
	viper.BindPFlag("upload.template_file", rootCmd.Flags().Lookup("template-file"))

	rootCmd.PersistentFlags().String("region", "", "AWS region (default: AWS_REGION env var or shared config)")
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
		return exitFileError
	}
	return 0
}
