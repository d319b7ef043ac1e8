// Package main exposes TaskMate teams and profile operations as MCP tools
// over stdio or streamable HTTP.
package main

import (
	mcpcmd "github.com/taskmate/taskmate-web/internal/cmd/mcp"
	entrypoint "github.com/taskmate/taskmate-web/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceMCP, mcpcmd.ParseConfig, mcpcmd.Run)
}
