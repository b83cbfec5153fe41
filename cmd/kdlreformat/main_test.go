package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrintConfigIndent(t *testing.T) {
	indent, semicolons, radix, rawStrings, exponent = -1, false, true, true, "e"
	cfg, err := printConfig()
	if err != nil {
		t.Fatalf("printConfig error: %v", err)
	}
	if cfg.Indent != "\t" {
		t.Errorf("Indent = %q, want tab for indent=-1", cfg.Indent)
	}

	indent = 2
	cfg, err = printConfig()
	if err != nil {
		t.Fatalf("printConfig error: %v", err)
	}
	if cfg.Indent != "  " {
		t.Errorf("Indent = %q, want two spaces", cfg.Indent)
	}
}

func TestPrintConfigNoRadixNoRawStrings(t *testing.T) {
	indent, semicolons, radix, noRadix, rawStrings, noRawStrings, exponent = -1, false, true, true, true, true, "e"
	defer func() { noRadix, noRawStrings = false, false }()

	cfg, err := printConfig()
	if err != nil {
		t.Fatalf("printConfig error: %v", err)
	}
	if cfg.RespectRadix {
		t.Error("RespectRadix = true, want false with --no-radix set")
	}
	if cfg.RespectStringType {
		t.Error("RespectStringType = true, want false with --no-raw-strings set")
	}
}

func TestPrintConfigRejectsBadExponent(t *testing.T) {
	indent, exponent = -1, "x"
	if _, err := printConfig(); err == nil {
		t.Error("printConfig should reject an exponent flag other than e/E")
	}
	exponent = "e"
}

func TestRunReformatsFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.kdl")
	out := filepath.Join(dir, "out.kdl")
	if err := os.WriteFile(in, []byte("n 0x1F\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	indent, semicolons, radix, rawStrings, exponent, outfile = -1, false, true, true, "e", out
	if err := run(rootCmd, []string{in}); err != nil {
		t.Fatalf("run error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "n 0x1F\n" {
		t.Errorf("output = %q, want \"n 0x1F\\n\"", got)
	}
}
