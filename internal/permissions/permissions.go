package permissions

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gkobilansky/shield-study/internal/study"
)

type Mode string

const (
	ModeGranted Mode = "granted"
	ModeRevoked Mode = "revoked"
	ModePrompt  Mode = "prompt"
)

// Static answers every query with the same permissions.
type Static study.DataPermissions

func (s Static) DataPermissions(ctx context.Context) (study.DataPermissions, error) {
	return study.DataPermissions(s), nil
}

// New returns the permissions source for mode. Prompt reads from in and
// writes to out; both may be nil to use the terminal.
func New(mode string, in io.ReadCloser, out io.WriteCloser) (study.Permissions, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(mode))) {
	case ModeGranted:
		return Static{Shield: true}, nil
	case ModeRevoked:
		return Static{}, nil
	case ModePrompt:
		return &Prompt{Stdin: in, Stdout: out}, nil
	default:
		return nil, fmt.Errorf("unknown permissions mode %q (want granted, revoked or prompt)", mode)
	}
}
