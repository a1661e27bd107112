package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/vmunix/mediaimport/internal/host/local"
	"github.com/vmunix/mediaimport/internal/server"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <path> [query]",
	Short: "Run one importer action and print what it reported",
	Long: `Run one importer action against the local host, the way the media
center invokes the add-on, and print its acknowledgements.

Examples:
  mediaimport invoke plugin://mediaimport/discoverprovider
  mediaimport invoke plugin://mediaimport/isproviderready --provider <id>
  mediaimport invoke plugin://mediaimport/import 'mediatypes=movie,set' --import '<key>'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		providerID, _ := cmd.Flags().GetString("provider")
		importKey, _ := cmd.Flags().GetString("import")
		query := ""
		if len(args) > 1 {
			query = args[1]
		}

		r, _, closeDB, err := setup(nil)
		if err != nil {
			return err
		}
		defer closeDB()
		return runInvoke(cmd.Context(), cmd.OutOrStdout(), r, args[0], query, local.Invocation{
			ProviderID: providerID,
			ImportKey:  importKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().String("provider", "", "Provider id the action works on")
	invokeCmd.Flags().String("import", "", "Import key the action works on")
}

func runInvoke(ctx context.Context, w io.Writer, r *server.Runner, path, query string, inv local.Invocation) error {
	if ctx == nil {
		ctx = context.Background()
	}
	h := r.Host().Begin(inv)
	defer r.Host().End(h)

	if err := r.Dispatcher().Dispatch(ctx, h, path, query); err != nil {
		return err
	}
	res, _ := r.Host().Result(h)
	if jsonOutput {
		printJSON(res)
		return nil
	}
	printResult(w, res)
	return nil
}

func printResult(w io.Writer, res local.Result) {
	if len(res.Acks) == 0 && res.Status == "" && !res.Finished && !res.Updated && res.Discovered == nil {
		fmt.Fprintln(w, "No acknowledgements.")
		return
	}
	for _, name := range slices.Sorted(maps.Keys(res.Acks)) {
		fmt.Fprintf(w, "%-36s %v\n", name, res.Acks[name])
	}
	if res.Discovered != nil {
		fmt.Fprintf(w, "discovered: %s\n", res.Discovered.String())
	}
	if res.Status != "" {
		fmt.Fprintf(w, "status: %s\n", res.Status)
	}
	for _, mt := range slices.Sorted(maps.Keys(res.Imported)) {
		fmt.Fprintf(w, "imported %s: %d\n", mt, len(res.Imported[mt]))
	}
	if res.Finished {
		fmt.Fprintf(w, "finished (partial: %v)\n", res.Partial)
	}
	if res.Updated {
		fmt.Fprintln(w, "updated on provider")
	}
}
