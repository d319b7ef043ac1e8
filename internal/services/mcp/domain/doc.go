// Package domain maps MCP tool calls onto TaskMate backend requests.
//
// Each tool is a Tool constructor plus a Handler constructor that takes the
// backend client and the credential session. Handlers return structured
// results MCP clients can render, and errors carry the backend message.
package domain
