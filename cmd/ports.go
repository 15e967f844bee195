package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/system"
	"github.com/microtonal-studio/patchctl/internal/transport"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List the addressable MIDI ports",
	Long: `ports prints the endpoints currently visible to each transport,
in the same form connection profiles match against. By default both
transports are listed.`,
	Args: cobra.NoArgs,
	RunE: runPorts,
}

var portsTransport string

func init() {
	portsCmd.Flags().StringVarP(&portsTransport, "transport", "t", "", "Only list this transport (seq or graph)")
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	kinds := []transport.Kind{transport.KindSeq, transport.KindGraph}
	if portsTransport != "" {
		kind, err := transport.ParseKind(portsTransport)
		if err != nil {
			return errors.ValidationError(err.Error())
		}
		kinds = []transport.Kind{kind}
	}

	ctx := context.Background()
	var firstErr error
	for _, kind := range kinds {
		if err := printListing(ctx, kind); err != nil {
			logWarning("%s: %v", kind, err)
			if firstErr == nil {
				firstErr = errors.TransportFailed(string(kind), err)
			}
		}
	}
	return firstErr
}

func printListing(ctx context.Context, kind transport.Kind) error {
	tr, err := transport.New(kind, system.DefaultExecutor())
	if err != nil {
		return err
	}

	listing, err := tr.Listing(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s sources:\n", kind)
	for _, row := range listing.Sources {
		fmt.Printf("  %s\n", row.Display)
	}
	fmt.Printf("%s destinations:\n", kind)
	for _, row := range listing.Dests {
		fmt.Printf("  %s\n", row.Display)
	}
	fmt.Println()
	return nil
}
