package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/teemow/gdrive-upload/internal/logging"
)

// Input names, shared by the action inputs, the YAML file keys and (with
// dashes instead of underscores) the command-line flags.
const (
	InputCredentials         = "credentials"
	InputParentFolderID      = "parent_folder_id"
	InputTarget              = "target"
	InputOwner               = "owner"
	InputChildFolder         = "child_folder"
	InputOverwrite           = "overwrite"
	InputName                = "name"
	InputExcludeTrashedFiles = "exclude_trashed_files"
	InputConcurrency         = "concurrency"
)

// RequiredInputs are the inputs Validate rejects when empty.
var RequiredInputs = []string{InputCredentials, InputParentFolderID}

// DefaultConcurrency uploads directory entries one at a time.
const DefaultConcurrency = 1

// Config is the complete upload configuration.
type Config struct {
	// Credentials is the base64-encoded service-account JSON key
	Credentials string `yaml:"credentials"`

	// ParentFolderID is the Drive folder everything is placed under
	ParentFolderID string `yaml:"parent_folder_id"`

	// Target is the local file or directory to upload; empty only resolves the folder
	Target string `yaml:"target"`

	// Owner is the user the service account impersonates
	Owner string `yaml:"owner"`

	// ChildFolder is a slash-separated folder path below ParentFolderID
	ChildFolder string `yaml:"child_folder"`

	// Overwrite updates an existing same-named file instead of adding another
	Overwrite bool `yaml:"overwrite"`

	// Name overrides the remote file name for single-file uploads
	Name string `yaml:"name"`

	// ExcludeTrashedFiles makes the overwrite lookup ignore trashed files
	ExcludeTrashedFiles bool `yaml:"exclude_trashed_files"`

	// Concurrency is the number of directory entries uploaded at once
	Concurrency int `yaml:"concurrency"`
}

// Default returns a Config holding the defaults of every optional value.
func Default() Config {
	return Config{
		Concurrency: DefaultConcurrency,
	}
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// File is an optional YAML file; empty skips the file layer
	File string

	// Getenv looks up action inputs; defaults to os.Getenv
	Getenv func(string) string

	// Flags are the command-line flags registered with BindFlags; only
	// flags that were set explicitly are applied
	Flags *pflag.FlagSet
}

// Load builds a Config from the layers in opts and validates it.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.loadFile(opts.File); err != nil {
			return nil, err
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.applyInputs(githubactions.New(githubactions.WithGetenv(getenv))); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		if err := cfg.applyFlags(opts.Flags); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFile overlays the YAML file at path. Unknown keys are rejected.
func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read config file %s: %w", ErrInvalidConfig, path, err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to parse config file %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

// applyInputs overlays the action inputs that are set.
func (c *Config) applyInputs(action *githubactions.Action) error {
	fields := map[string]*string{
		InputCredentials:    &c.Credentials,
		InputParentFolderID: &c.ParentFolderID,
		InputTarget:         &c.Target,
		InputOwner:          &c.Owner,
		InputChildFolder:    &c.ChildFolder,
		InputName:           &c.Name,
	}
	for name, field := range fields {
		if v := action.GetInput(name); v != "" {
			*field = v
		}
	}

	// Only the exact string "true" switches a flag on
	if v := action.GetInput(InputOverwrite); v != "" {
		c.Overwrite = v == "true"
	}
	if v := action.GetInput(InputExcludeTrashedFiles); v != "" {
		c.ExcludeTrashedFiles = v == "true"
	}

	if v := action.GetInput(InputConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number, got %q", ErrInvalidConfig, InputConcurrency, v)
		}
		c.Concurrency = n
	}
	return nil
}

// Validate checks that the required inputs are present and usable.
func (c *Config) Validate() error {
	if c.Credentials == "" {
		return missing(InputCredentials)
	}
	if c.ParentFolderID == "" {
		return missing(InputParentFolderID)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, InputConcurrency, c.Concurrency)
	}
	if _, err := DecodeCredentials(c.Credentials); err != nil {
		return err
	}
	return nil
}

func missing(name string) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, ErrMissingInput, name)
}

// LogValue implements slog.LogValuer so a Config never logs its credentials.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String(InputCredentials, logging.SanitizeSecret(c.Credentials)),
		slog.String(InputParentFolderID, c.ParentFolderID),
		slog.String(InputTarget, c.Target),
		slog.String(InputOwner, logging.AnonymizeEmail(c.Owner)),
		slog.String(InputChildFolder, c.ChildFolder),
		slog.Bool(InputOverwrite, c.Overwrite),
		slog.String(InputName, c.Name),
		slog.Bool(InputExcludeTrashedFiles, c.ExcludeTrashedFiles),
		slog.Int(InputConcurrency, c.Concurrency),
	)
}
