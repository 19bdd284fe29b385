package main

import (
	"github.com/joeydtaylor/steeze-plugin/pkg/serverfx"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCommand() *cobra.Command {
	opts := serverfx.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the entry points over HTTP as described by the manifest",
		Long: `Serve the entry points over HTTP.

Routes come from the TOML manifest named by $PLUGIN_MANIFEST (default
manifest.toml). The listen address comes from $SERVER_LISTEN_ADDRESS
(default :4000); TLS is used when $SSL_SERVER_CERTIFICATE and
$SSL_SERVER_KEY both name existing files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := fx.New(serverfx.Module(opts))
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.DefaultManifest, "manifest", opts.DefaultManifest, "manifest used when $PLUGIN_MANIFEST is unset")
	cmd.Flags().StringVar(&opts.DefaultListen, "listen", opts.DefaultListen, "address used when $SERVER_LISTEN_ADDRESS is unset")
	return cmd
}
