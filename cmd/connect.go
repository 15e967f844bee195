package cmd

import (
	"context"
	stderrors "errors"
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/profile"
	"github.com/microtonal-studio/patchctl/internal/resolver"
	"github.com/microtonal-studio/patchctl/internal/system"
	"github.com/microtonal-studio/patchctl/internal/tui"
)

var connectCmd = &cobra.Command{
	Use:   "connect [profile]",
	Short: "Resolve and apply a connection profile",
	Long: `connect looks up the named profile, resolves each of its links
against the live port listings, and connects what it finds.

Every link is attempted: one missing device never blocks the rest of the
profile. With no profile argument an interactive picker opens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConnect,
}

var (
	connectFile        string
	connectStopOnError bool
	connectDryRun      bool
)

func init() {
	connectCmd.Flags().StringVarP(&connectFile, "file", "f", "", "Load the profile from a TOML file instead of the store")
	connectCmd.Flags().BoolVar(&connectStopOnError, "stop-on-error", false, "Abort at the first link that does not connect")
	connectCmd.Flags().BoolVarP(&connectDryRun, "dry-run", "n", false, "Resolve links but do not connect anything")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	p, err := pickProfile(args)
	if err != nil || p == nil {
		return err
	}

	opts := resolver.Options{
		StopOnError: connectStopOnError,
		DryRun:      connectDryRun,
	}

	r := resolver.New(system.DefaultExecutor())
	results := r.Run(context.Background(), p.Links, opts)

	return reportResults(p, results, opts)
}

// pickProfile selects the profile to apply: the named one, the one in
// --file, or the interactive picker. A nil profile with nil error means
// the user backed out of the picker.
func pickProfile(args []string) (*profile.Profile, error) {
	if connectFile != "" {
		return profileFromFile(args)
	}

	store := profileStore()

	if len(args) == 1 {
		p, err := store.Get(args[0])
		if err != nil {
			return nil, errors.ProfileNotFound(args[0])
		}
		return p, nil
	}

	// The picker needs a terminal; scripts have to name a profile.
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, errors.ValidationError("no profile named; run 'patchctl profiles' to list them")
	}

	list, err := store.List()
	if err != nil {
		return nil, errors.ConfigError("loading profiles", err)
	}
	ptrs := make([]*profile.Profile, len(list))
	for i := range list {
		ptrs[i] = &list[i]
	}

	result, err := tui.RunPicker(ptrs)
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "profile picker failed", err)
	}

	switch result.Action {
	case tui.ActionConnect:
		return result.Profile, nil
	case tui.ActionDryRun:
		connectDryRun = true
		return result.Profile, nil
	}
	return nil, nil
}

func profileFromFile(args []string) (*profile.Profile, error) {
	all, err := profile.LoadFile(system.DefaultFS(), connectFile)
	if err != nil {
		return nil, errors.ConfigError("loading profile file", err)
	}

	var p profile.Profile
	switch {
	case len(args) == 1:
		named, ok := all[args[0]]
		if !ok {
			return nil, errors.ProfileNotFound(args[0])
		}
		p = named
	case len(all) == 1:
		for _, only := range all {
			p = only
		}
	default:
		return nil, errors.ValidationError("profile file defines several profiles; name one")
	}

	if err := profile.Validate(&p); err != nil {
		return nil, errors.ConfigError("invalid profile", err)
	}
	return &p, nil
}

// reportResults prints one line per link and maps the run outcome to an
// exit code. Transport query failures outrank ordinary link failures.
func reportResults(p *profile.Profile, results []resolver.Result, opts resolver.Options) error {
	connected := 0
	downKind := ""

	for _, res := range results {
		switch res.Status {
		case resolver.StatusConnected:
			connected++
			if opts.DryRun {
				logInfo("Would connect: %s (%s -> %s)", res.Spec.Label, res.Source.Display, res.Dest.Display)
			} else {
				logSuccess("Connected: %s (%s -> %s)", res.Spec.Label, res.Source.Display, res.Dest.Display)
			}
		case resolver.StatusNotFound:
			logWarning("could not find %s: %s", res.Spec.Label, res.MissingNames())
		case resolver.StatusFailed:
			if stderrors.Is(res.Err, resolver.ErrTransportQuery) && downKind == "" {
				downKind = string(res.Spec.Transport)
			}
			logError("Failed: %s: %v", res.Spec.Label, res.Err)
		}
	}

	total := len(p.Links)
	if connected == total {
		return nil
	}
	if downKind != "" && connected == 0 {
		return errors.TransportFailed(downKind, resolver.ErrTransportQuery)
	}
	return errors.PartialFailure(total-connected, total)
}
