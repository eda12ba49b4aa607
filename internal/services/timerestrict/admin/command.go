package admin

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/timerestrict/internal/platform/errors"
	"go.uber.org/zap"
)

// Command names, also used as metric labels.
const (
	cmdStatus       = "status"
	cmdCheck        = "check"
	cmdSet          = "set"
	cmdClear        = "clear"
	cmdHistory      = "history"
	cmdBypass       = "bypass"
	cmdBypassAdd    = "bypass add"
	cmdBypassRemove = "bypass remove"
	cmdBypassList   = "bypass list"
	cmdUnknown      = "unknown"
)

var usages = map[string]string{
	"":              RootCommand + " <status|check|set|clear|bypass|history>",
	cmdStatus:       RootCommand + " status",
	cmdCheck:        RootCommand + " check",
	cmdSet:          RootCommand + " set <day> <HHmm-HHmm>",
	cmdClear:        RootCommand + " clear <day>",
	cmdHistory:      RootCommand + " history [limit]",
	cmdBypass:       RootCommand + " bypass <add|remove|list> [player]",
	cmdBypassAdd:    RootCommand + " bypass add <player>",
	cmdBypassRemove: RootCommand + " bypass remove <player>",
	cmdBypassList:   RootCommand + " bypass list",
}

// ExecuteLine splits a typed command line, dropping an optional leading
// "/timerestrict", and executes it.
func (c *Console) ExecuteLine(ctx context.Context, privileged bool, line string) Feedback {
	args := strings.Fields(line)
	if len(args) > 0 && strings.EqualFold(strings.TrimPrefix(args[0], "/"), RootCommand) {
		args = args[1:]
	}
	return c.Execute(ctx, privileged, args)
}

// Execute runs the command named by args, the words after the root
// literal. Every command requires privilege; unprivileged callers get a
// permission error and nothing changes.
func (c *Console) Execute(ctx context.Context, privileged bool, args []string) Feedback {
	name := commandName(args)
	var fb Feedback
	if !privileged {
		fb = c.fail(apperrors.CodePermissionDenied, keyPermissionDenied)
	} else {
		fb = c.dispatch(ctx, name, args)
	}
	c.metrics.ObserveCommand(name, fb.OK)
	if !fb.OK && !fb.Code.IsUserError() {
		c.logger.Warn("admin command failed", zap.String("command", name), zap.String("code", string(fb.Code)))
	}
	c.logger.Debug("admin command",
		zap.String("command", name),
		zap.Bool("privileged", privileged),
		zap.Bool("ok", fb.OK),
	)
	return fb
}

func (c *Console) dispatch(ctx context.Context, name string, args []string) Feedback {
	switch name {
	case "":
		return c.usage("")
	case cmdStatus:
		if len(args) != 1 {
			return c.usage(name)
		}
		return c.Status()
	case cmdCheck:
		if len(args) != 1 {
			return c.usage(name)
		}
		return c.Check()
	case cmdSet:
		if len(args) != 3 {
			return c.usage(name)
		}
		return c.Set(args[1], args[2])
	case cmdClear:
		if len(args) != 2 {
			return c.usage(name)
		}
		return c.Clear(args[1])
	case cmdHistory:
		switch len(args) {
		case 1:
			return c.History(ctx, DefaultHistoryLimit)
		case 2:
			limit, ok := parseLimit(args[1])
			if !ok {
				return c.fail(apperrors.CodeUsage, keyInvalidLimit, args[1])
			}
			return c.History(ctx, limit)
		default:
			return c.usage(name)
		}
	case cmdBypass:
		return c.usage(name)
	case cmdBypassAdd:
		if len(args) != 3 {
			return c.usage(name)
		}
		return c.BypassAdd(args[2])
	case cmdBypassRemove:
		if len(args) != 3 {
			return c.usage(name)
		}
		return c.BypassRemove(args[2])
	case cmdBypassList:
		if len(args) != 2 {
			return c.usage(name)
		}
		return c.BypassList()
	default:
		return c.fail(apperrors.CodeUnknownCommand, keyUnknownCommand, strings.Join(args, " "))
	}
}

func commandName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	switch first := strings.ToLower(args[0]); first {
	case cmdStatus, cmdCheck, cmdSet, cmdClear, cmdHistory:
		return first
	case cmdBypass:
		if len(args) < 2 {
			return cmdBypass
		}
		switch sub := cmdBypass + " " + strings.ToLower(args[1]); sub {
		case cmdBypassAdd, cmdBypassRemove, cmdBypassList:
			return sub
		}
		return cmdUnknown
	default:
		return cmdUnknown
	}
}

func (c *Console) usage(name string) Feedback {
	return c.fail(apperrors.CodeUsage, keyUsage, usages[name])
}
