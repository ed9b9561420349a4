package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Varun5711/hashlink/internal/hashids"
	"github.com/Varun5711/hashlink/internal/qrcode"
	"github.com/urfave/cli/v2"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "hashid",
		Usage:     "Encode integers into short salted hashes and back",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "salt",
				Aliases: []string{"s"},
				Usage:   "Salt that makes hashes unique to this deployment",
				EnvVars: []string{"HASHIDS_SALT"},
			},
			&cli.StringFlag{
				Name:    "alphabet",
				Aliases: []string{"a"},
				Usage:   "Characters hashes are built from (at least 16 unique)",
				EnvVars: []string{"HASHIDS_ALPHABET"},
			},
			&cli.IntFlag{
				Name:    "min-length",
				Aliases: []string{"m"},
				Usage:   "Pad hashes to at least this many characters",
				EnvVars: []string{"HASHIDS_MIN_LENGTH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Aliases:   []string{"e"},
				Usage:     "Encode one or more unsigned 32-bit integers",
				ArgsUsage: "N [N...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "qr",
						Usage: "Also print the hash as a terminal QR code",
					},
				},
				Action: encodeCommand,
			},
			{
				Name:      "decode",
				Aliases:   []string{"d"},
				Usage:     "Decode a hash back into its integers",
				ArgsUsage: "HASH",
				Action:    decodeCommand,
			},
			{
				Name:      "encode-hex",
				Usage:     "Encode a hexadecimal string",
				ArgsUsage: "HEX",
				Action:    encodeHexCommand,
			},
			{
				Name:      "decode-hex",
				Usage:     "Decode a hash produced by encode-hex",
				ArgsUsage: "HASH",
				Action:    decodeHexCommand,
			},
			{
				Name:   "inspect",
				Usage:  "Show the alphabet, separators and guards derived from the salt",
				Action: inspectCommand,
			},
		},
	}
}

func codecFromFlags(c *cli.Context) (*hashids.HashID, error) {
	return hashids.NewWithConfig(hashids.Config{
		Salt:      c.String("salt"),
		Alphabet:  c.String("alphabet"),
		MinLength: c.Int("min-length"),
	})
}

func encodeCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("encode requires at least one number")
	}

	numbers := make([]uint32, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		n, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", arg, err)
		}
		numbers = append(numbers, uint32(n))
	}

	codec, err := codecFromFlags(c)
	if err != nil {
		return err
	}

	hash := codec.Encrypt(numbers)
	fmt.Fprintln(c.App.Writer, hash)

	if c.Bool("qr") {
		qr, err := qrcode.ASCII(hash)
		if err != nil {
			return err
		}
		fmt.Fprint(c.App.Writer, qr)
	}
	return nil
}

func decodeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("decode requires exactly one hash")
	}

	codec, err := codecFromFlags(c)
	if err != nil {
		return err
	}

	numbers, err := codec.Decrypt(c.Args().First())
	if err != nil {
		return err
	}

	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	fmt.Fprintln(c.App.Writer, strings.Join(parts, " "))
	return nil
}

func encodeHexCommand(c *cli.Context) error {
	if c.NArg() != 1 || c.Args().First() == "" {
		return fmt.Errorf("encode-hex requires exactly one non-empty hex string")
	}

	codec, err := codecFromFlags(c)
	if err != nil {
		return err
	}

	hash, err := codec.EncryptHex(c.Args().First())
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, hash)
	return nil
}

func decodeHexCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("decode-hex requires exactly one hash")
	}

	codec, err := codecFromFlags(c)
	if err != nil {
		return err
	}

	hex, err := codec.DecryptHex(c.Args().First())
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, hex)
	return nil
}

func inspectCommand(c *cli.Context) error {
	codec, err := codecFromFlags(c)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "alphabet:   %s\n", codec.Alphabet())
	fmt.Fprintf(c.App.Writer, "separators: %s\n", codec.Separators())
	fmt.Fprintf(c.App.Writer, "guards:     %s\n", codec.Guards())
	fmt.Fprintf(c.App.Writer, "min length: %d\n", codec.MinLength())
	return nil
}
