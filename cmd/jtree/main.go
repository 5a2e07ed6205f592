// Command jtree decodes JSON files and prints them back in compact form.
//
// Usage:
//
//	jtree [-e] [-v] file [expected] [file [expected]...]
//
// When an expected argument follows a file the document must be a number whose %f formatting equals it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ecadlabs/jtree/v2"
)

type test struct {
	file     string
	expected string
}

func pairs(args []string) []test {
	out := make([]test, 0, len(args))
	for i := 0; i < len(args); {
		t := test{file: args[i]}
		i++
		if i < len(args) {
			t.expected = args[i]
			i++
		}
		out = append(out, t)
	}
	return out
}

func run(ctx context.Context, t test, stdout io.Writer, op []jtree.Option) error {
	f, err := os.Open(t.file)
	if err != nil {
		return err
	}
	defer f.Close()

	v, err := jtree.DecodeReader(ctx, f, op...)
	if err != nil {
		var se *jtree.SyntaxError
		if errors.As(err, &se) {
			return fmt.Errorf("%s:%d:%d: error: %s", t.file, se.Row, se.Col, se.Kind.String())
		}
		return fmt.Errorf("%s: error: %w", t.file, err)
	}
	defer v.Destroy()

	if t.expected == "" {
		fmt.Fprintln(stdout, v.String())
		return nil
	}
	n, ok := v.AsNumber()
	if !ok {
		return fmt.Errorf("expected '%s' -> got %s", t.expected, v.Type())
	}
	got := fmt.Sprintf("%f", n)
	if got != t.expected {
		return fmt.Errorf("expected '%s' -> got '%s'", t.expected, got)
	}
	fmt.Fprintln(stdout, got)
	return nil
}

func main() {
	var (
		ext     bool
		verbose bool
	)
	flag.BoolVar(&ext, "e", false, "Enable all grammar extensions")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "no input files provided")
		os.Exit(1)
	}

	op := []jtree.Option{jtree.OpLogger(log)}
	if ext {
		op = append(op, jtree.OpExtensions(jtree.ExtAll))
	}
	for _, t := range pairs(flag.Args()) {
		if err := run(context.Background(), t, os.Stdout, op); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
