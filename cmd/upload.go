package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/teemow/gdrive-upload/internal/action"
	"github.com/teemow/gdrive-upload/internal/config"
	"github.com/teemow/gdrive-upload/internal/drive"
	"github.com/teemow/gdrive-upload/internal/google"
	"github.com/teemow/gdrive-upload/internal/instrumentation"
	"github.com/teemow/gdrive-upload/internal/logging"
	"github.com/teemow/gdrive-upload/internal/uploader"
)

const shutdownTimeout = 5 * time.Second

// storeFactory builds the remote store for a loaded configuration.
type storeFactory func(ctx context.Context, cfg *config.Config, metrics *instrumentation.Metrics) (uploader.Store, error)

// newDriveStore authenticates as the configured service account and returns
// a Drive client.
func newDriveStore(ctx context.Context, cfg *config.Config, metrics *instrumentation.Metrics) (uploader.Store, error) {
	sa, err := cfg.ServiceAccount()
	if err != nil {
		return nil, err
	}

	httpClient, err := google.NewHTTPClient(ctx, sa, cfg.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	return drive.NewClient(ctx, metrics, option.WithHTTPClient(httpClient))
}

func newUploadCmd() *cobra.Command {
	return newUploadCmdWithStore(newDriveStore)
}

func newUploadCmdWithStore(newStore storeFactory) *cobra.Command {
	var (
		configFile string
		debugMode  bool
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a file or directory to a Google Drive folder",
		Long: `Upload a file or directory to a Google Drive folder.

The destination is the parent folder, or the child folder path below it. Missing
child folders are created; existing ones are reused.

A file target is uploaded once, optionally under a different name. A directory
target has each regular file directly inside it uploaded under its own name;
subdirectories are skipped. With overwrite enabled, a file that already exists
in the destination under the same name gets its content replaced.

Inputs are read, in increasing order of precedence, from the --config YAML file,
from INPUT_<NAME> environment variables, and from flags:

  credentials            Base64-encoded service-account JSON key (required)
  parent_folder_id       ID of the Drive folder to upload into (required)
  target                 Local file or directory; omit to only resolve the folder
  owner                  User the service account impersonates
  child_folder           Slash-separated folder path below the parent folder
  overwrite              "true" replaces existing files of the same name
  name                   Remote file name for single-file uploads
  exclude_trashed_files  "true" ignores trashed files when overwriting
  concurrency            Number of directory entries uploaded at once (default 1)

Debug logging is enabled with --debug or RUNNER_DEBUG=1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !debugMode {
				debugMode = logging.DebugEnabled(os.Getenv("RUNNER_DEBUG"))
			}
			logger := slog.New(logging.NewHandler(cmd.ErrOrStderr(), debugMode))
			reporter := action.NewReporter(githubactions.New(githubactions.WithWriter(cmd.OutOrStdout())))

			err := runUpload(cmd, newStore, logger, reporter, configFile)
			if err != nil {
				reporter.Fail(err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML file with upload inputs")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	config.BindFlags(cmd.Flags())

	return cmd
}

func runUpload(cmd *cobra.Command, newStore storeFactory, logger *slog.Logger, reporter *action.Reporter, configFile string) error {
	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger = logging.WithOperation(logger, "upload")

	cfg, err := config.Load(config.LoadOptions{
		File:  configFile,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return err
	}
	logger.Debug("loaded configuration", "config", cfg, logging.UserHash(cfg.Owner))

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation configuration: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		// Flush even when ctx was cancelled by a signal
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	logger.Debug("instrumentation initialized",
		slog.Bool("enabled", provider.Enabled()),
		slog.String("metrics_exporter", instrConfig.MetricsExporter),
		slog.String("tracing_exporter", instrConfig.TracingExporter),
	)

	store, err := newStore(ctx, cfg, provider.Metrics())
	if err != nil {
		return err
	}

	audit := instrumentation.NewAuditLoggerWithConfig(
		logging.WithService(logger, "audit"),
		instrConfig.AuditLogging,
	)

	u := uploader.New(store,
		uploader.WithLogger(logging.NewSlogAdapter(logger).With(logging.Service(instrumentation.ServiceDrive))),
		uploader.WithMetrics(provider.Metrics()),
		uploader.WithAuditLogger(audit),
		uploader.WithOwner(cfg.Owner),
		uploader.WithOverwrite(cfg.Overwrite),
		uploader.WithExcludeTrashedFiles(cfg.ExcludeTrashedFiles),
		uploader.WithConcurrency(cfg.Concurrency),
	)

	report, err := u.Run(ctx, uploader.Request{
		ParentFolderID: cfg.ParentFolderID,
		ChildFolder:    cfg.ChildFolder,
		Target:         cfg.Target,
		Name:           cfg.Name,
	})
	if err != nil {
		if report != nil {
			reporter.PublishFolder(report.FolderID)
		}
		return err
	}

	if err := reporter.PublishReport(report); err != nil {
		return err
	}

	logger.Info("upload finished",
		logging.Status(instrumentation.StatusSuccess),
		logging.FolderID(report.FolderID),
		logging.Count(len(report.Results)),
	)
	return nil
}
