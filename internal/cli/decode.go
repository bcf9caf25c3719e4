package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/toonkit/toon"
)

// newDecodeCmd creates the decode command: TOON in, JSON out.
func newDecodeCmd(opts *rootOpts) *cobra.Command {
	var (
		output string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a TOON document back to JSON",
		Long: `Decode a TOON document back to JSON.

Reads TOON from the given file, or from stdin when the argument is
missing or "-". Output is compact JSON unless --pretty is set.

Examples:
  toon decode users.toon
  toon decode --pretty users.toon -o users.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			data, name, err := readInput(args)
			if err != nil {
				return errors.Wrapf(err, "reading %s", name)
			}
			v, err := toon.Decode(string(data), cfg)
			if err != nil {
				return err
			}
			var out []byte
			if pretty {
				out, err = toon.ToJSONIndent(v, "  ")
			} else {
				out, err = toon.ToJSON(v)
			}
			if err != nil {
				return err
			}
			logger.Debugf("Decoded %d TOON bytes from %s into %d JSON bytes", len(data), name, len(out))
			return writeOutput(output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
