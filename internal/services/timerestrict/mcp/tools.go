package mcp

import (
	"context"
	"errors"

	"github.com/louisbranch/timerestrict/internal/services/timerestrict/admin"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// DayWindow is one day of the schedule.
type DayWindow struct {
	Day    string `json:"day" jsonschema:"day name, Monday first"`
	Window string `json:"window,omitempty" jsonschema:"restricted range as HHmm-HHmm, empty when unrestricted"`
}

// StatusResult is the output of the status tool.
type StatusResult struct {
	Days    []DayWindow `json:"days" jsonschema:"all seven days in order"`
	Message string      `json:"message" jsonschema:"operator-facing summary"`
}

// StatusTool defines the status tool.
func StatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timerestrict_status",
		Description: "Lists the restriction window of every day of the week.",
	}
}

// StatusHandler reports the schedule.
func StatusHandler(deps Deps) mcp.ToolHandlerFor[EmptyInput, StatusResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, StatusResult, error) {
		schedule := deps.Schedule.Schedule()
		result := StatusResult{Message: deps.Console.Status().Message}
		for _, day := range domain.Week {
			entry := DayWindow{Day: day.String()}
			if window, ok := schedule.Window(day); ok {
				entry.Window = window.String()
			}
			result.Days = append(result.Days, entry)
		}
		return nil, result, nil
	}
}

// CheckResult is the output of the check tool.
type CheckResult struct {
	Restricted bool   `json:"restricted" jsonschema:"whether non-exempt players are refused right now"`
	Day        string `json:"day" jsonschema:"current day in the configured time zone"`
	Window     string `json:"window,omitempty" jsonschema:"today's window as HHmm-HHmm, if any"`
	Denial     string `json:"denial,omitempty" jsonschema:"message shown to refused players while restricted"`
	Message    string `json:"message" jsonschema:"operator-facing summary"`
}

// CheckTool defines the check tool.
func CheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timerestrict_check",
		Description: "Reports whether server access is restricted at this moment.",
	}
}

// CheckHandler evaluates the schedule now.
func CheckHandler(deps Deps) mcp.ToolHandlerFor[EmptyInput, CheckResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, CheckResult, error) {
		eval, denial := deps.Checker.Check()
		result := CheckResult{
			Restricted: eval.Restricted,
			Day:        eval.Day.String(),
			Message:    deps.Console.Check().Message,
		}
		if eval.HasWindow {
			result.Window = eval.Window.String()
		}
		if eval.Restricted {
			result.Denial = denial
		}
		return nil, result, nil
	}
}

// FeedbackResult is the output of mutating tools.
type FeedbackResult struct {
	Message   string `json:"message" jsonschema:"operator-facing result"`
	Broadcast bool   `json:"broadcast" jsonschema:"whether other operators should be told about the change"`
}

// SetInput is the input of the set tool.
type SetInput struct {
	Day   string `json:"day" jsonschema:"day name, any case (e.g. MONDAY)"`
	Range string `json:"range" jsonschema:"restricted range as HHmm-HHmm; start after end wraps past midnight"`
}

// SetTool defines the set tool.
func SetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timerestrict_set",
		Description: "Restricts access on one day between two times. Both bounds are exclusive.",
	}
}

// SetHandler assigns a day's window.
func SetHandler(deps Deps) mcp.ToolHandlerFor[SetInput, FeedbackResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SetInput) (*mcp.CallToolResult, FeedbackResult, error) {
		return feedbackResult(deps.Console.Set(input.Day, input.Range))
	}
}

// DayInput names one day.
type DayInput struct {
	Day string `json:"day" jsonschema:"day name, any case"`
}

// ClearTool defines the clear tool.
func ClearTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timerestrict_clear",
		Description: "Removes the restriction window of one day.",
	}
}

// ClearHandler removes a day's window.
func ClearHandler(deps Deps) mcp.ToolHandlerFor[DayInput, FeedbackResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DayInput) (*mcp.CallToolResult, FeedbackResult, error) {
		return feedbackResult(deps.Console.Clear(input.Day))
	}
}

// PlayerInput names one player.
type PlayerInput struct {
	Player string `json:"player" jsonschema:"player name, case sensitive"`
}

// BypassAddTool defines the bypass add tool.
func BypassAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timerestrict_bypass_add",
		Description: "Exempts a player from the schedule.",
	}
}

// BypassAddHandler adds a player to the bypass list.
func BypassAddHandler(deps Deps) mcp.ToolHandlerFor[PlayerInput, FeedbackResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PlayerInput) (*mcp.CallToolResult, FeedbackResult, error) {
		return feedbackResult(deps.Console.BypassAdd(input.Player))
	}
}

// BypassRemoveTool defines the bypass remove tool.
func BypassRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timerestrict_bypass_remove",
		Description: "Removes a player's exemption.",
	}
}

// BypassRemoveHandler removes a player from the bypass list.
func BypassRemoveHandler(deps Deps) mcp.ToolHandlerFor[PlayerInput, FeedbackResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PlayerInput) (*mcp.CallToolResult, FeedbackResult, error) {
		return feedbackResult(deps.Console.BypassRemove(input.Player))
	}
}

// BypassListResult is the output of the bypass list tool.
type BypassListResult struct {
	Players []string `json:"players" jsonschema:"exempt players in insertion order"`
	Message string   `json:"message" jsonschema:"operator-facing summary"`
}

// BypassListTool defines the bypass list tool.
func BypassListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timerestrict_bypass_list",
		Description: "Lists exempt players.",
	}
}

// BypassListHandler lists the bypass list.
func BypassListHandler(deps Deps) mcp.ToolHandlerFor[EmptyInput, BypassListResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, BypassListResult, error) {
		players := deps.Bypass.Names()
		if players == nil {
			players = []string{}
		}
		return nil, BypassListResult{Players: players, Message: deps.Console.BypassList().Message}, nil
	}
}

// feedbackResult turns failed feedback into a tool error.
func feedbackResult(fb admin.Feedback) (*mcp.CallToolResult, FeedbackResult, error) {
	if !fb.OK {
		return nil, FeedbackResult{}, errors.New(fb.Message)
	}
	return nil, FeedbackResult{Message: fb.Message, Broadcast: fb.Broadcast}, nil
}
