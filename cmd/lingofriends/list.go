package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lingofriends/internal/friend"
	"lingofriends/internal/nav"
	"lingofriends/internal/search"
)

type listOptions struct {
	query  string
	asJSON bool
}

func newListCmd(root *rootOptions, getenv func(string) string) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print your friends without starting the UI",
		Long: `Fetches the friends list once and prints one line per friend, or a JSON
array with --json. With --query only matching friends are printed, preceded
by the result count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, root, opts, getenv)
		},
	}
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "filter by name, location or language")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

func runList(cmd *cobra.Command, root *rootOptions, opts *listOptions, getenv func(string) string) error {
	rt, err := setup(cmd.Context(), cmd, root, getenv)
	if err != nil {
		return err
	}
	defer rt.close()

	friends, err := rt.client.FetchFriends(cmd.Context())
	if err != nil {
		return err
	}
	if rt.store != nil {
		if err := rt.store.Save(friends); err != nil {
			rt.logger.Warn("save friends cache", "err", err)
		}
	}

	state := search.State{}
	state.SetQuery(opts.query)
	matches := state.Apply(friends)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}
	if state.Active() {
		fmt.Fprintln(out, search.Summary(len(matches), state.Query))
	}
	return printFriends(out, matches, rt.router)
}

// printFriends writes one tab-separated line per friend: name, location,
// languages and chat link.
func printFriends(w io.Writer, friends []friend.Friend, router *nav.Router) error {
	for _, f := range friends {
		name, ok := friend.Value(f.FullName)
		if !ok {
			name = "(" + friend.UnknownInitials + ")"
		}
		loc, _ := friend.Value(f.Location)

		var langs []string
		if l, ok := friend.Value(f.NativeLanguage); ok {
			langs = append(langs, "native:"+l)
		}
		if l, ok := friend.Value(f.LearningLanguage); ok {
			langs = append(langs, "learning:"+l)
		}

		dest, err := router.Resolve(nav.OpenChat{FriendID: f.ID})
		link := dest.Path
		if err == nil && dest.URL != "" {
			link = dest.URL
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, loc, strings.Join(langs, ","), link); err != nil {
			return err
		}
	}
	return nil
}
