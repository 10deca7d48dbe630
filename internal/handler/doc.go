// Package handler implements the request handler of the file server.
// A request either lists a directory as an HTML page of links or returns the
// contents of a file as UTF-8 text.
package handler
