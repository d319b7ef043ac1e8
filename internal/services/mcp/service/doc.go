// Package service hosts the TaskMate MCP server over stdio or streamable HTTP.
package service
