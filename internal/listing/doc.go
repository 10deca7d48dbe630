// Package listing turns a directory on disk into the entries shown on a
// listing page. It owns the fixed set of excluded filename suffixes and the
// construction of the links that lead back into the server.
package listing
