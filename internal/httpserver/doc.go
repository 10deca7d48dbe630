// Package httpserver wraps net/http.Server so that binding the port and
// serving requests are separate steps.
package httpserver
