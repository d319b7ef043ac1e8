// Package main starts an in-memory TaskMate REST backend for local
// development.
package main

import (
	fakebackendcmd "github.com/taskmate/taskmate-web/internal/cmd/fakebackend"
	entrypoint "github.com/taskmate/taskmate-web/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceFakeBackend, fakebackendcmd.ParseConfig, fakebackendcmd.Run)
}
