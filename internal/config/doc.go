// Package config assembles the gdrive-upload configuration.
//
// Values are merged from three layers, lowest precedence first:
//   - an optional YAML file (--config)
//   - GitHub Actions inputs, read from INPUT_<NAME> environment variables
//   - command-line flags that were set explicitly
//
// A value that is absent from a layer leaves the lower layer's value alone.
package config
