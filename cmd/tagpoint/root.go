package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tagpoint/internal/search"
)

const configFileFlag = "config"

func newRootCmd() *cobra.Command {
	var cfgFile string
	d := search.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "tagpoint",
		Short: "Find the first secp256k1 point whose x starts with a phrase",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			v, err := loadViper(c, cfgFile)
			if err != nil {
				return err
			}
			cfg, err := search.LoadConfig(v)
			if err != nil {
				return err
			}
			return search.Run(c.Context(), cfg, c.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, configFileFlag, "", "optional config file (json, yaml or toml)")
	cmd.PersistentFlags().String(search.KeyLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		return setupLogging(c, cfgFile)
	}

	f := cmd.Flags()
	f.String(search.KeyPhrase, d.Phrase, "ASCII prefix placed in the high bytes of x (max 32 bytes)")
	f.String(search.KeyStart, d.Start, "explicit start x, 0x-hex or decimal; overrides --phrase")
	f.Uint64(search.KeyMaxIterations, d.MaxIterations, "stop after this many candidates (0 = unbounded)")
	f.String(search.KeyBackend, string(d.Backend), "square root backend: big|field")
	f.String(search.KeyFormat, string(d.Format), "output format: text|json")
	f.Bool(search.KeyPubKey, d.PubKey, "also print the SEC1 public keys of the point")

	cmd.AddCommand(newBenchCmd(&cfgFile), newVersionCmd())
	return cmd
}

// loadViper layers flags over TAGPOINT_* env vars over the config file.
func loadViper(c *cobra.Command, cfgFile string) (*viper.Viper, error) {
	v, err := search.NewViper(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := v.BindPFlags(c.Flags()); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	return v, nil
}

func setupLogging(c *cobra.Command, cfgFile string) error {
	log.SetOutput(c.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	v, err := loadViper(c, cfgFile)
	if err != nil {
		return err
	}
	lvl, err := log.ParseLevel(v.GetString(search.KeyLogLevel))
	if err != nil {
		return errors.Wrapf(err, "bad --%s", search.KeyLogLevel)
	}
	log.SetLevel(lvl)
	return nil
}
