// Package updatehook runs an external command as the update pipeline,
// for deployments that keep their own update tooling.
package updatehook

import (
	"context"
	"os/exec"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/platform/logging"
	"github.com/draftwatch/draftwatch/internal/usecase"
)

// ScriptRunner invokes a configured executable with the league id as its
// only argument. It satisfies the same contract as the in-process pipeline.
type ScriptRunner struct {
	command string
	logger  *logging.Logger
}

func NewScriptRunner(command string, logger *logging.Logger) *ScriptRunner {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScriptRunner{
		command: strings.TrimSpace(command),
		logger:  logger,
	}
}

// Run executes the hook command. A missing or non-executable command is
// reported as a dependency failure before anything is spawned, so callers
// can distinguish a broken deployment from a failed update.
func (r *ScriptRunner) Run(ctx context.Context, leagueID string) error {
	if r.command == "" {
		return crerr.Wrap(usecase.ErrDependencyUnavailable, "no update command configured")
	}
	if _, err := exec.LookPath(r.command); err != nil {
		return crerr.Wrapf(usecase.ErrDependencyUnavailable, "update command %s not found: %v", r.command, err)
	}

	r.logger.InfoContext(ctx, "running update hook", "command", r.command, "league_id", leagueID)

	cmd := exec.CommandContext(ctx, r.command, leagueID)
	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		r.logger.DebugContext(ctx, "update hook output", "command", r.command, "output", strings.TrimSpace(string(output)))
	}
	if err != nil {
		return crerr.Wrapf(err, "update command %s failed", r.command)
	}

	return nil
}
