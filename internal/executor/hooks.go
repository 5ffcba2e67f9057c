package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"go.uber.org/zap"
)

const defaultHookTimeout = 10 * time.Second

// ErrNoHook is returned when running an action that has no command configured
var ErrNoHook = errors.New("no hook configured for action")

// HookCommand is a command line bound to an action identifier
type HookCommand struct {
	Action string
	Binary string
	Args   []string // {title}, {artist}, {album}, {id} and {art_url} are replaced per run
}

// HookExecutor runs host commands for notification actions. It implements domain.HookRunner.
type HookExecutor struct {
	logger  *zap.Logger
	hooks   map[string]HookCommand
	timeout time.Duration
}

// NewHookExecutor parses the action to command line table. Commands whose
// binary is not found are skipped with a warning.
func NewHookExecutor(logger *zap.Logger, commands map[string]string, timeout time.Duration) *HookExecutor {
	if timeout <= 0 {
		timeout = defaultHookTimeout
	}
	e := &HookExecutor{logger: logger, hooks: make(map[string]HookCommand), timeout: timeout}

	actions := make([]string, 0, len(commands))
	for action := range commands {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		fields := strings.Fields(commands[action])
		if len(fields) == 0 {
			continue
		}
		if !commandExists(fields[0]) {
			logger.Warn("Hook command not found, skipping",
				zap.String("action", action), zap.String("binary", fields[0]))
			continue
		}
		e.hooks[action] = HookCommand{Action: action, Binary: fields[0], Args: fields[1:]}
		logger.Info("Action hook registered", zap.String("action", action), zap.String("binary", fields[0]))
	}
	return e
}

// commandExists checks if a binary exists in PATH, or at the given path
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Has reports whether a command is configured for the action
func (e *HookExecutor) Has(actionID string) bool {
	_, ok := e.hooks[actionID]
	return ok
}

// Run executes the hook for actionID with the track exposed through
// placeholders and MPRISNOTIFY_* environment variables
func (e *HookExecutor) Run(ctx context.Context, actionID string, meta domain.TrackMetadata) error {
	hook, ok := e.hooks[actionID]
	if !ok {
		return fmt.Errorf("%s: %w", actionID, ErrNoHook)
	}

	replacer := strings.NewReplacer(
		"{title}", meta.Title,
		"{artist}", meta.Subtitle,
		"{album}", meta.Album,
		"{id}", meta.ID,
		"{art_url}", meta.ArtURL,
	)
	args := make([]string, len(hook.Args))
	for i, arg := range hook.Args {
		args[i] = replacer.Replace(arg)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.logger.Debug("Running action hook",
		zap.String("action", actionID),
		zap.String("command", hook.Binary),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, hook.Binary, args...)
	cmd.WaitDelay = time.Second // children holding the output pipe must not outlive the timeout
	cmd.Env = append(os.Environ(),
		"MPRISNOTIFY_ACTION="+actionID,
		"MPRISNOTIFY_TITLE="+meta.Title,
		"MPRISNOTIFY_ARTIST="+meta.Subtitle,
		"MPRISNOTIFY_ALBUM="+meta.Album,
		"MPRISNOTIFY_TRACK_ID="+meta.ID,
		"MPRISNOTIFY_ART_URL="+meta.ArtURL,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("hook %s failed: %w (output: %s)", hook.Binary, err, strings.TrimSpace(string(output)))
	}

	e.logger.Info("Action hook completed", zap.String("action", actionID))
	return nil
}
