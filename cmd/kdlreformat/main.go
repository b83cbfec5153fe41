// Command kdlreformat reads a KDL document and reprints it under the requested formatting policy.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sblinch/kdl-go/document"
	"github.com/sblinch/kdl-go/parser"
)

var (
	indent       int
	semicolons   bool
	radix        bool
	noRadix      bool
	rawStrings   bool
	noRawStrings bool
	exponent     string
	outfile      string
)

var rootCmd = &cobra.Command{
	Use:   "kdlreformat [infile]",
	Short: "Reformat a KDL document",
	Long: `kdlreformat parses a KDL document and reprints it under a configurable indent,
radix, string-type, and exponent-character policy.

Reads infile, or stdin when infile is omitted or "-". Writes to --out, or stdout when omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&indent, "indent", -1, "indent width in spaces; -1 selects tab indentation")
	rootCmd.Flags().BoolVar(&semicolons, "semicolons", false, "terminate each node with ';' in addition to a newline")
	rootCmd.Flags().BoolVar(&radix, "radix", true, "preserve hex/octal/binary radix")
	rootCmd.Flags().BoolVar(&noRadix, "no-radix", false, "force every number to decimal, discarding its original radix")
	rootCmd.Flags().BoolVar(&rawStrings, "raw-strings", true, "preserve raw-string form")
	rootCmd.Flags().BoolVar(&noRawStrings, "no-raw-strings", false, "force every string to quoted form, discarding raw-string form")
	rootCmd.Flags().StringVar(&exponent, "exponent", "e", "exponent character for scientific notation: 'e' or 'E'")
	rootCmd.Flags().StringVar(&outfile, "out", "-", "output file, or '-' for stdout")
}

func run(cmd *cobra.Command, args []string) error {
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	doc, err := parser.Parse(string(src), nil)
	if err != nil {
		return err
	}

	cfg, err := printConfig()
	if err != nil {
		return err
	}

	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	return doc.Fprint(out, cfg)
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", args[0], err)
	}
	return f, nil
}

func openOutput() (io.WriteCloser, error) {
	if outfile == "" || outfile == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(outfile)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", outfile, err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func printConfig() (*document.PrintConfig, error) {
	cfg := document.DefaultPrintConfig
	if indent < 0 {
		cfg.Indent = "\t"
	} else {
		cfg.Indent = strings.Repeat(" ", indent)
	}
	cfg.Semicolons = semicolons
	cfg.RespectRadix = radix && !noRadix
	cfg.RespectStringType = rawStrings && !noRawStrings

	switch exponent {
	case "e":
		cfg.ExponentChar = 'e'
	case "E":
		cfg.ExponentChar = 'E'
	default:
		return nil, fmt.Errorf("--exponent must be 'e' or 'E', got %q", exponent)
	}
	return &cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
