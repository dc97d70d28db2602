package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taurusgroup/ecckey/pkg/ecc"
	"github.com/taurusgroup/ecckey/pkg/keys"
	"github.com/taurusgroup/ecckey/pkg/registry"
)

// message is either the raw message argument, or the hex encoded digest when
// isDigest is set.
type message struct {
	isDigest bool
	isHex    bool
	// cborSig selects the hex encoded CBOR form of signatures instead of SIG_ strings.
	cborSig bool
}

func (m *message) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&m.isDigest, "digest", false, "the message is a hex encoded 32 byte digest")
	cmd.Flags().BoolVar(&m.isHex, "hex", false, "the message is hex encoded")
	cmd.Flags().BoolVar(&m.cborSig, "cbor", false, "signatures are hex encoded CBOR")
}

func (m *message) encodeSignature(sig string) (string, error) {
	if !m.cborSig {
		return sig, nil
	}
	parsed, err := keys.ParseSignature(sig)
	if err != nil {
		return "", err
	}
	data, err := parsed.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

func (m *message) decodeSignature(arg string) (string, error) {
	if !m.cborSig {
		return arg, nil
	}
	data, err := hex.DecodeString(arg)
	if err != nil {
		return "", fmt.Errorf("signature is not hex: %w", err)
	}
	var sig keys.Signature
	if err := sig.UnmarshalBinary(data); err != nil {
		return "", err
	}
	return sig.String(), nil
}

func (m *message) data(arg string) ([]byte, error) {
	if !m.isHex {
		return []byte(arg), nil
	}
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("message is not hex: %w", err)
	}
	return data, nil
}

func (a *app) signCmd() *cobra.Command {
	var m message
	cmd := &cobra.Command{
		Use:   "sign <private key> <message>",
		Short: "Sign a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sig string
				err error
			)
			if m.isDigest {
				sig, err = ecc.SignHash(args[1], args[0], a.flags.curve, keys.WithLogger(a.logger))
			} else {
				var data []byte
				if data, err = m.data(args[1]); err != nil {
					return err
				}
				sig, err = ecc.Sign(data, args[0], a.flags.curve, keys.WithLogger(a.logger))
			}
			if err != nil {
				return err
			}
			if sig, err = m.encodeSignature(sig); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		},
	}
	m.register(cmd)
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var m message
	cmd := &cobra.Command{
		Use:   "verify <signature> <message> <public key>",
		Short: "Verify a signature; exits with an error when it is invalid",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := m.decodeSignature(args[0])
			if err != nil {
				return err
			}
			var ok bool
			if m.isDigest {
				ok, err = ecc.VerifyHash(sig, args[1], args[2], a.flags.curve)
			} else {
				var data []byte
				if data, err = m.data(args[1]); err != nil {
					return err
				}
				ok, err = ecc.Verify(sig, data, args[2], a.flags.curve)
			}
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid signature")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	m.register(cmd)
	return cmd
}

func (a *app) recoverCmd() *cobra.Command {
	var m message
	cmd := &cobra.Command{
		Use:   "recover <signature> <message>",
		Short: "Recover the public key that signed a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			sig, err := m.decodeSignature(args[0])
			if err != nil {
				return err
			}
			var pub string
			if m.isDigest {
				pub, err = ecc.RecoverHash(sig, args[1], a.flags.curve, format)
			} else {
				var data []byte
				if data, err = m.data(args[1]); err != nil {
					return err
				}
				pub, err = ecc.Recover(sig, data, a.flags.curve, format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pub)
			return nil
		},
	}
	m.register(cmd)
	return cmd
}

func (a *app) hashCmd() *cobra.Command {
	var isHex bool
	cmd := &cobra.Command{
		Use:   "hash <message>",
		Short: "Print the digest signatures on --curve are computed over",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := message{isHex: isHex}
			data, err := m.data(args[0])
			if err != nil {
				return err
			}
			info, err := registry.ByName(a.flags.curve)
			if err != nil {
				return err
			}
			h := ecc.SHA256(data)
			if info.Name == registry.SM2 {
				h = ecc.SM3(data)
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().BoolVar(&isHex, "hex", false, "the message is hex encoded")
	return cmd
}
