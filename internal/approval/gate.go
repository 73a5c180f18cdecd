// Package approval resolves the source tag to promote, either from a
// pre-supplied run parameter or from a bounded interactive prompt.
package approval

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrApprovalTimeout indicates the operator did not answer the prompt within
// the configured bound. The run halts before any cluster mutation occurs.
var ErrApprovalTimeout = errors.New("approval prompt timed out")

// ErrNoTerminal indicates no tag was pre-supplied and there is no terminal
// to prompt on (e.g. a non-interactive CI run without release_version_tag).
var ErrNoTerminal = errors.New("no source tag supplied and stdin is not a terminal")

// stdinIsTerminal can be replaced in tests.
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Gate resolves which source tag gets promoted.
type Gate struct {
	// Preset is the pre-supplied source tag. When non-empty it is returned
	// directly and no prompt is shown.
	Preset string

	// Timeout bounds the interactive prompt.
	Timeout time.Duration
}

// SourceTag returns the tag to promote to the given release version.
//
// The pre-supplied path wins unconditionally; the interactive path prompts
// the operator with the target release version displayed and waits at most
// Timeout for a non-empty answer.
func (g *Gate) SourceTag(ctx context.Context, releaseVersion string) (string, error) {
	if preset := strings.TrimSpace(g.Preset); preset != "" {
		return preset, nil
	}

	if !stdinIsTerminal() {
		return "", ErrNoTerminal
	}

	return g.prompt(ctx, releaseVersion)
}

func (g *Gate) prompt(ctx context.Context, releaseVersion string) (string, error) {
	var tag string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Promote which tag to release %s?", releaseVersion)).
				Description("Image stream tag to promote (e.g. 2.1-8)").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("tag must not be empty")
					}
					return nil
				}).
				Value(&tag),
		),
	).WithTimeout(g.Timeout)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrTimeout) {
			return "", fmt.Errorf("%w after %v", ErrApprovalTimeout, g.Timeout)
		}
		return "", fmt.Errorf("approval prompt failed: %w", err)
	}

	return strings.TrimSpace(tag), nil
}
