package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bep/exifmeta"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	outputFile string
	strict     bool
	warnings   bool
	debug      bool

	output io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts rootOptions
	logger := log.New(stderr, "exifmeta: ", 0)

	cmd := &cobra.Command{
		Use:   "exifmeta <file>",
		Short: "EXIF metadata viewer",
		Long: `exifmeta prints the EXIF and TIFF metadata embedded in a file.

The file is searched for an EXIF block, so JPEG, TIFF and most other
containers carrying EXIF are supported. Tags are listed per directory:
Primary (IFD0), Thumbnail (IFD1), Exif, GPS and Interop.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &exitError{code: exitMissingArgument, err: errors.New("expected a picture file name")}
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.outputFile != "" {
				f, err := os.Create(opts.outputFile)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				opts.output = f
			} else {
				opts.output = stdout
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if f, ok := opts.output.(*os.File); ok && f != os.Stdout {
				f.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := exifmeta.DecodeFile(args[0], exifmeta.Options{
				SkipUnknownTags: !opts.strict,
				Warnings:        opts.warnings,
				Debug:           opts.debug,
				Warnf:           logger.Printf,
				Debugf:          logger.Printf,
			})
			if err != nil {
				return &exitError{code: exitDecodeFailure, err: fmt.Errorf("failed to read exif content: %w", err)}
			}
			defer desc.Close()

			return printReport(opts.output, desc)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.outputFile, "output", "o", "", "write output to file instead of stdout")
	flags.BoolVar(&opts.strict, "strict", false, "fail on tags missing from the tag tables instead of skipping them")
	flags.BoolVar(&opts.warnings, "warnings", false, "log skipped tags and other warnings")
	flags.BoolVar(&opts.debug, "debug", false, "log every directory entry")

	return cmd
}

func printReport(w io.Writer, desc *exifmeta.Descriptor) error {
	namespaces := desc.Namespaces()

	for _, ns := range namespaces {
		tags, err := desc.Tags(ns, cmp.Compare[uint16])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s tags:", ns)
		for _, tag := range tags {
			fmt.Fprintf(w, " 0x%04x", tag)
		}
		fmt.Fprintln(w)
	}

	for _, ns := range namespaces {
		fmt.Fprintf(w, "\n%s metadata (%s):\n", ns, ns.Path())
		desc.Store(ns).Range(func(tag uint16, v exifmeta.Value) bool {
			fmt.Fprintf(w, "  %s: %s\n", exifmeta.TagName(ns, tag), v)
			return true
		})
	}

	if uc, found, err := desc.UserComment(); found {
		if err != nil {
			fmt.Fprintf(w, "\nUser comment: %v\n", err)
		} else {
			fmt.Fprintf(w, "\nUser comment (%s): %s\n", uc.Charset, uc.Text)
		}
	}

	if t, found := desc.Thumbnail(); found {
		fmt.Fprintf(w, "\nThumbnail: offset %d, length %d\n", desc.HeaderOffset()+int64(t.Offset), t.Length)
	}

	return nil
}
