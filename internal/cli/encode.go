package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/toonkit/toon"
)

// newEncodeCmd creates the encode command: JSON in, TOON out.
func newEncodeCmd(opts *rootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON document as TOON",
		Long: `Encode a JSON document as TOON.

Reads JSON from the given file, or from stdin when the argument is
missing or "-". Object key order is preserved.

Examples:
  toon encode payload.json
  curl -s https://api.example.com/users | toon encode -o users.toon`,
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
			v, err := toon.FromJSON(data)
			if err != nil {
				return err
			}
			text, err := toon.Encode(v, cfg)
			if err != nil {
				return err
			}
			logger.Debugf("Encoded %d JSON bytes from %s into %d TOON bytes", len(data), name, len(text))
			return writeOutput(output, []byte(text))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
