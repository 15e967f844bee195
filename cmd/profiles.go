package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microtonal-studio/patchctl/internal/errors"
	"github.com/microtonal-studio/patchctl/internal/profile"
	"github.com/microtonal-studio/patchctl/internal/resolver"
	"github.com/microtonal-studio/patchctl/internal/tui"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles [name]",
	Short: "List connection profiles",
	Long: `profiles lists the known connection profiles: the built-in table
plus anything defined in profiles.toml or profiles.d/ under the config
directory. With a name argument it prints that profile's links.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	store := profileStore()

	if len(args) == 1 {
		return showProfile(store, args[0])
	}

	list, err := store.List()
	if err != nil {
		return errors.ConfigError("loading profiles", err)
	}

	ptrs := make([]*profile.Profile, len(list))
	for i := range list {
		ptrs[i] = &list[i]
	}
	fmt.Print(tui.SimplePicker(ptrs))
	return nil
}

func showProfile(store *profile.Store, name string) error {
	p, err := store.Get(name)
	if err != nil {
		return errors.ProfileNotFound(name)
	}

	fmt.Printf("Profile: %s\n", p.Name)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	fmt.Println()

	for _, link := range p.Links {
		fmt.Printf("  [%s] %s\n", link.Transport, link.Label)
		fmt.Printf("    source: %s\n", describeMatch(link.Source))
		fmt.Printf("    dest:   %s\n", describeMatch(link.Dest))
	}
	return nil
}

func describeMatch(m resolver.Match) string {
	s := fmt.Sprintf("%q", m.Pattern)
	if m.Context != "" {
		s += fmt.Sprintf(" (context %q)", m.Context)
	}
	if m.Port != 0 {
		s += fmt.Sprintf(" port %d", m.Port)
	}
	return s
}
