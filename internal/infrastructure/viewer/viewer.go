// Package viewer opens files in the desktop's default application.
package viewer

import (
	"context"
	"os/exec"
	"runtime"

	crerr "github.com/cockroachdb/errors"
)

// SystemOpener shells out to the platform's opener command.
type SystemOpener struct{}

func NewSystemOpener() *SystemOpener {
	return &SystemOpener{}
}

func (o *SystemOpener) Open(ctx context.Context, path string) error {
	command := "xdg-open"
	if runtime.GOOS == "darwin" {
		command = "open"
	}
	if _, err := exec.LookPath(command); err != nil {
		return crerr.Wrapf(err, "%s not available", command)
	}
	if err := exec.CommandContext(ctx, command, path).Start(); err != nil {
		return crerr.Wrapf(err, "open %s", path)
	}
	return nil
}
