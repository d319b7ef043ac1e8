// Package storage declares persistence contracts for web-owned state: browser
// sessions, derived backend read caches and uploaded avatars.
//
// Nothing here is a source of truth for TaskMate data; the backend owns users
// and teams.
package storage
