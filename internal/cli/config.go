package cli

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/toonkit/toon"
)

// defaultConfigFile is the config path probed when --config is unset.
const defaultConfigFile = "toon.toml"

// fileConfig is the TOML shape of a config file. Pointer fields
// distinguish "unset, keep the default" from an explicit zero.
type fileConfig struct {
	TableSeparator          string   `toml:"table_separator"`
	HeaderFillChar          string   `toml:"header_fill_char"`
	MaxInlineArrayLength    *int     `toml:"max_inline_array_length"`
	CompressPrimitiveArrays *bool    `toml:"compress_primitive_arrays"`
	MaxStringLength         *int     `toml:"max_string_length"`
	QuoteStrings            *bool    `toml:"quote_strings"`
	IndentSize              *int     `toml:"indent_size"`
	MaxNestingDepth         *int     `toml:"max_nesting_depth"`
	UniformityThreshold     *float64 `toml:"uniformity_threshold"`
	MinTableRows            *int     `toml:"min_table_rows"`
}

// apply merges the file's explicit settings over cfg.
func (f *fileConfig) apply(cfg toon.Config) (toon.Config, error) {
	if f.TableSeparator != "" {
		r, err := singleRune(f.TableSeparator)
		if err != nil {
			return cfg, errors.Wrap(err, "table_separator")
		}
		cfg.TableSeparator = r
	}
	if f.HeaderFillChar != "" {
		r, err := singleRune(f.HeaderFillChar)
		if err != nil {
			return cfg, errors.Wrap(err, "header_fill_char")
		}
		cfg.HeaderFillChar = r
	}
	if f.MaxInlineArrayLength != nil {
		cfg.MaxInlineArrayLength = *f.MaxInlineArrayLength
	}
	if f.CompressPrimitiveArrays != nil {
		cfg.CompressPrimitiveArrays = *f.CompressPrimitiveArrays
	}
	if f.MaxStringLength != nil {
		cfg.MaxStringLength = *f.MaxStringLength
	}
	if f.QuoteStrings != nil {
		cfg.QuoteStrings = *f.QuoteStrings
	}
	if f.IndentSize != nil {
		cfg.IndentSize = *f.IndentSize
	}
	if f.MaxNestingDepth != nil {
		cfg.MaxNestingDepth = *f.MaxNestingDepth
	}
	if f.UniformityThreshold != nil {
		cfg.UniformityThreshold = *f.UniformityThreshold
	}
	if f.MinTableRows != nil {
		cfg.MinTableRows = *f.MinTableRows
	}
	return cfg, nil
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, errors.Errorf("%q must be a single character", s)
	}
	return r, nil
}

// loadConfig resolves the effective Config: defaults, overlaid by the
// --config file when given, or by ./toon.toml when present. A missing
// explicit path is an error; a missing default path is not.
func (o *rootOpts) loadConfig() (toon.Config, error) {
	cfg := toon.DefaultConfig()

	path := o.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return cfg, nil
		}
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}
	cfg, err = fc.apply(cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "applying %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "validating %s", path)
	}
	return cfg, nil
}

// defaultConfigTOML is what `toon config init` writes: the documented
// defaults, stated explicitly so they are easy to edit.
const defaultConfigTOML = `# toon configuration

# Column delimiter of table rows.
table_separator = "|"

# Fill character of the row between a table header and its data.
header_fill_char = "-"

# Longest all-primitive array that still renders as a one-line [..].
max_inline_array_length = 10

# Render short all-primitive arrays as one-line [..] literals.
compress_primitive_arrays = true

# Truncate strings longer than this many characters when embedding in
# prompts. 0 disables truncation.
max_string_length = 0

# Quote every string, even unambiguous ones.
quote_strings = false

# Columns per nesting level.
indent_size = 2

# Maximum structural nesting depth on encode and decode.
max_nesting_depth = 10

# Minimum fraction of array elements sharing the majority key set for
# table rendering. The boundary is inclusive.
uniformity_threshold = 0.8

# Minimum element count for table rendering.
min_table_rows = 2
`

func newConfigCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the toon.toml config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a toon.toml with the documented defaults",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = defaultConfigFile
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := os.WriteFile(path, []byte(defaultConfigTOML), 0o644); err != nil {
				return errors.Wrap(err, "writing config")
			}
			loggerFromContext(c.Context()).Infof("Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "table_separator = %q\n", string(cfg.TableSeparator))
			fmt.Fprintf(c.OutOrStdout(), "header_fill_char = %q\n", string(cfg.HeaderFillChar))
			fmt.Fprintf(c.OutOrStdout(), "max_inline_array_length = %d\n", cfg.MaxInlineArrayLength)
			fmt.Fprintf(c.OutOrStdout(), "compress_primitive_arrays = %t\n", cfg.CompressPrimitiveArrays)
			fmt.Fprintf(c.OutOrStdout(), "max_string_length = %d\n", cfg.MaxStringLength)
			fmt.Fprintf(c.OutOrStdout(), "quote_strings = %t\n", cfg.QuoteStrings)
			fmt.Fprintf(c.OutOrStdout(), "indent_size = %d\n", cfg.IndentSize)
			fmt.Fprintf(c.OutOrStdout(), "max_nesting_depth = %d\n", cfg.MaxNestingDepth)
			fmt.Fprintf(c.OutOrStdout(), "uniformity_threshold = %g\n", cfg.UniformityThreshold)
			fmt.Fprintf(c.OutOrStdout(), "min_table_rows = %d\n", cfg.MinTableRows)
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	cmd.AddCommand(showCmd)
	return cmd
}
