package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taurusgroup/ecckey/pkg/ecc"
	"github.com/taurusgroup/ecckey/pkg/keys"
	"github.com/taurusgroup/ecckey/pkg/registry"
	"go.uber.org/zap"
)

// format returns the --format flag, the empty string meaning the curve's default.
func (a *app) format() (registry.Format, error) {
	if a.flags.format == "" {
		return "", nil
	}
	return registry.ParseFormat(a.flags.format)
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <seed>",
		Short: "Derive the private key SHA-256(seed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			pvt, err := ecc.SeedPrivate(args[0], a.flags.curve, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pvt)
			return nil
		},
	}
}

func (a *app) randomCmd() *cobra.Command {
	var (
		cpuEntropyBits int
		unsafe         bool
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random private key and print it with its public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			gen := keys.NewGenerator(keys.WithLogger(a.logger))
			var k *keys.PrivateKey
			if unsafe {
				k, err = gen.UnsafeRandomKey(a.flags.curve)
			} else {
				k, err = gen.RandomKey(a.flags.curve, cpuEntropyBits)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("generated key", zap.String("curve", k.Curve().Name), zap.Int("entropy_bits", gen.Pool().Count()))

			pvt := k.String()
			if format != "" {
				if pvt, err = k.Format(format); err != nil {
					return err
				}
			}
			pub, err := ecc.PrivateToPublic(pvt, format, a.flags.prefix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Private key: %s\nPublic key:  %s\n", pvt, pub)
			return nil
		},
	}
	cmd.Flags().IntVar(&cpuEntropyBits, "cpu-entropy", 0, "additional bits of CPU entropy to gather")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "skip the self test and entropy gathering")
	return cmd
}

func (a *app) publicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "public <private key>",
		Short: "Print the public key of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			private := args[0]
			if a.flags.curve != "" {
				k, err := keys.ParsePrivateKey(private)
				if err != nil {
					return err
				}
				if k, err = k.WithCurve(a.flags.curve); err != nil {
					return err
				}
				private = k.String()
			}
			pub, err := ecc.PrivateToPublic(private, format, a.flags.prefix)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pub)
			return nil
		},
	}
}

func (a *app) curvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the supported curves",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range registry.Names() {
				info, _ := registry.ByName(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-4s %-7s %v\n", info.Name, info.KeyType, info.Scheme.Name(), info.Formats)
			}
		},
	}
}
