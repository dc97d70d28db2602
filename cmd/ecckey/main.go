// Command ecckey generates, converts and checks keys, and signs, verifies and
// recovers messages on the supported curves.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type globalFlags struct {
	curve    string
	format   string
	prefix   string
	logLevel string
}

type app struct {
	flags  globalFlags
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "ecckey",
		Short:         "Multi-curve key and signature tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.flags.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.curve, "curve", "", "curve name: secp256k1, sm2 or secp256r1 (default: the key's own curve, or secp256k1)")
	root.PersistentFlags().StringVar(&a.flags.format, "format", "", "key format: WIF or KTP (default: WIF when the curve supports it)")
	root.PersistentFlags().StringVar(&a.flags.prefix, "prefix", "", "legacy public key prefix (default: EOS)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(
		a.seedCmd(),
		a.randomCmd(),
		a.publicCmd(),
		a.signCmd(),
		a.verifyCmd(),
		a.recoverCmd(),
		a.hashCmd(),
		a.curvesCmd(),
	)
	return root
}

// newLogger writes human readable logs at the given level to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
