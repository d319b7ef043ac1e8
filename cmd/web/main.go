// Package main starts the TaskMate browser-facing web service.
package main

import (
	webcmd "github.com/taskmate/taskmate-web/internal/cmd/web"
	entrypoint "github.com/taskmate/taskmate-web/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceWeb, webcmd.ParseConfig, webcmd.Run)
}
