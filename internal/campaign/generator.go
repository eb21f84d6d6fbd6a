// Package campaign drives the single generation pass: build the prompt,
// request the completion, validate it, and persist the result.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/99thDragon/nyla-sprint-99thDragon/internal/prompt"
)

// ErrEmptyCompletion reports a completion that was empty or whitespace-only.
// Distinct from transport and protocol failures: the API call worked but
// returned nothing worth saving.
var ErrEmptyCompletion = errors.New("received empty response from API")

// CompletionClient is the single call the generator needs from the API layer.
type CompletionClient interface {
	ChatCompletion(ctx context.Context, model, prompt string) (string, error)
}

// Options are the per-invocation inputs, fixed once flags are parsed.
type Options struct {
	Event        string
	Date         string
	Tone         prompt.Tone
	Model        string
	OutputPath   string
	DryRun       bool
	ShowResponse bool
}

// Generator runs one campaign generation pass.
type Generator struct {
	client CompletionClient
	stdout io.Writer
	stderr io.Writer
}

// New creates a Generator. stdout carries the success confirmation and any
// echoed content; everything else goes to stderr.
func New(client CompletionClient, stdout, stderr io.Writer) *Generator {
	return &Generator{client: client, stdout: stdout, stderr: stderr}
}

// Run executes the forward pass. Dry-run prints the prompt and returns before
// any network or file activity; otherwise the completion is requested,
// rejected if empty, and written verbatim to the output path.
func (g *Generator) Run(ctx context.Context, opts Options) error {
	p := prompt.Build(opts.Event, opts.Date, opts.Tone)

	if opts.DryRun {
		g.printFramed("Generated Prompt:", p)
		return nil
	}

	fmt.Fprintf(g.stderr, "\nGenerating content for %s...\n", opts.Event)

	content, err := g.client.ChatCompletion(ctx, opts.Model, p)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyCompletion
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	// Written verbatim: the model's whitespace is part of the artifact.
	if err := os.WriteFile(opts.OutputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(g.stdout, "\nContent saved to: %s\n", opts.OutputPath)

	if opts.ShowResponse {
		g.printFramed("Generated Content:", content)
	}
	return nil
}

const separator = "--------------------------------------------------"

// printFramed writes a heading and body framed by separator lines. The
// heading is styled only when stdout is a real terminal so piped output
// stays plain.
func (g *Generator) printFramed(heading, body string) {
	fmt.Fprintf(g.stdout, "\n%s\n", headingStyle(g.stdout).Render(heading))
	fmt.Fprintln(g.stdout, separator)
	fmt.Fprintln(g.stdout, body)
	fmt.Fprintln(g.stdout, separator)
}

func headingStyle(w io.Writer) lipgloss.Style {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle()
}
