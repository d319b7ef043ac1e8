// Package web hosts the TaskMate browser surface: the landing site, the
// sign-in flows and the authenticated dashboard.
//
// It is a backend-for-frontend. Pages are rendered on the server, the user
// snapshot lives in a server-side session and every data operation is a call
// to the TaskMate REST backend with the session's replayed credentials.
package web
