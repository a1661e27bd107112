package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/host/local"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered providers and their imports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, closeDB, err := setup(nil)
		if err != nil {
			return err
		}
		defer closeDB()
		return listProviders(cmd.OutOrStdout(), r.Host())
	},
}

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "Manage media imports",
}

var importsAddCmd = &cobra.Command{
	Use:   "add <provider-id> <media-type>...",
	Short: "Import the given media types from a provider",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, closeDB, err := setup(nil)
		if err != nil {
			return err
		}
		defer closeDB()
		imp, err := r.Host().AddImport(cmd.Context(), args[0], args[1:])
		if err != nil {
			return fmt.Errorf("add import: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Import %s\n", imp.Key())
		return nil
	},
}

var importsRemoveCmd = &cobra.Command{
	Use:   "remove <import-key>",
	Short: "Remove an import and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, closeDB, err := setup(nil)
		if err != nil {
			return err
		}
		defer closeDB()
		imp, err := r.Host().Store().GetImport(args[0])
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		return r.Host().RemoveImport(cmd.Context(), *imp)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync <import-key>",
	Short: "Fully synchronise one import now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, closeDB, err := setup(nil)
		if err != nil {
			return err
		}
		defer closeDB()
		return syncImport(cmd.Context(), cmd.OutOrStdout(), r.Host(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(providersCmd, importsCmd, syncCmd)
	importsCmd.AddCommand(importsAddCmd, importsRemoveCmd)
}

type providerView struct {
	host.Provider
	Imports []string `json:"imports"`
}

func listProviders(w io.Writer, h *local.Host) error {
	providers, err := h.Providers()
	if err != nil {
		return fmt.Errorf("list providers: %w", err)
	}

	views := make([]providerView, 0, len(providers))
	for _, p := range providers {
		imports, err := h.Imports(p.ID)
		if err != nil {
			return fmt.Errorf("list imports of %s: %w", p.String(), err)
		}
		v := providerView{Provider: p}
		for _, imp := range imports {
			v.Imports = append(v.Imports, imp.Key())
		}
		views = append(views, v)
	}

	if jsonOutput {
		printJSON(views)
		return nil
	}
	if len(views) == 0 {
		fmt.Fprintln(w, "No providers registered.")
		return nil
	}
	for _, v := range views {
		state := "inactive"
		if v.Active {
			state = "active"
		}
		fmt.Fprintf(w, "%s  %s  %s  [%s]\n", v.ID, v.FriendlyName, state, strings.Join(v.MediaTypes, ", "))
		for _, key := range v.Imports {
			fmt.Fprintf(w, "    import %s\n", key)
		}
	}
	return nil
}

func syncImport(ctx context.Context, w io.Writer, h *local.Host, key string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	imp, err := h.Store().GetImport(key)
	if err != nil {
		return fmt.Errorf("import %s: %w", key, err)
	}
	if err := h.Synchronise(ctx, *imp); err != nil {
		return err
	}
	fmt.Fprintf(w, "Synchronised %s\n", imp.String())
	return nil
}
