package permissions

import (
	"context"
	"errors"
	"io"

	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/manifoldco/promptui"
)

// Prompt asks the user on the terminal whether data collection is allowed.
type Prompt struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (p *Prompt) DataPermissions(ctx context.Context) (study.DataPermissions, error) {
	shield, err := p.confirm("Allow Shield studies to collect data")
	if err != nil {
		return study.DataPermissions{}, err
	}

	pioneer, err := p.confirm("Allow Pioneer studies to collect data")
	if err != nil {
		return study.DataPermissions{}, err
	}

	return study.DataPermissions{Shield: shield, Pioneer: pioneer}, nil
}

func (p *Prompt) confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.Stdin,
		Stdout:    p.Stdout,
	}

	_, err := prompt.Run()
	if err != nil {
		// promptui reports "no" as ErrAbort
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
