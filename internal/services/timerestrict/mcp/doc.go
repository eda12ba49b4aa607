// Package mcp exposes the admin operations as Model Context Protocol tools
// so an operator's assistant can inspect and edit the schedule. Callers
// reaching these tools are treated as privileged.
package mcp
