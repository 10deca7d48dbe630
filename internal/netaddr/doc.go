// Package netaddr finds the address other machines on the local network can
// use to reach this host.
package netaddr
