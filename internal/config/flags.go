package config

import (
	"strings"

	"github.com/spf13/pflag"
)

// FlagName returns the command-line flag for an input name.
func FlagName(input string) string {
	return strings.ReplaceAll(input, "_", "-")
}

// BindFlags registers one flag per input on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagName(InputCredentials), "", "Base64-encoded service-account JSON key")
	fs.String(FlagName(InputParentFolderID), "", "ID of the Drive folder to upload into")
	fs.String(FlagName(InputTarget), "", "Local file or directory to upload")
	fs.String(FlagName(InputOwner), "", "Email address of the user the service account impersonates")
	fs.String(FlagName(InputChildFolder), "", "Slash-separated folder path to create below the parent folder")
	fs.Bool(FlagName(InputOverwrite), false, "Replace the content of an existing file with the same name")
	fs.String(FlagName(InputName), "", "Remote file name for single-file uploads")
	fs.Bool(FlagName(InputExcludeTrashedFiles), false, "Ignore trashed files when looking for a file to overwrite")
	fs.Int(FlagName(InputConcurrency), DefaultConcurrency, "Number of directory entries uploaded at once")
}

// applyFlags overlays the flags that were set explicitly.
func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	for input, field := range map[string]*string{
		InputCredentials:    &c.Credentials,
		InputParentFolderID: &c.ParentFolderID,
		InputTarget:         &c.Target,
		InputOwner:          &c.Owner,
		InputChildFolder:    &c.ChildFolder,
		InputName:           &c.Name,
	} {
		name := FlagName(input)
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*field = v
	}

	for input, field := range map[string]*bool{
		InputOverwrite:           &c.Overwrite,
		InputExcludeTrashedFiles: &c.ExcludeTrashedFiles,
	} {
		name := FlagName(input)
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetBool(name)
		if err != nil {
			return err
		}
		*field = v
	}

	if name := FlagName(InputConcurrency); fs.Changed(name) {
		v, err := fs.GetInt(name)
		if err != nil {
			return err
		}
		c.Concurrency = v
	}
	return nil
}
