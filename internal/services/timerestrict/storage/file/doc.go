// Package file persists restriction settings and the bypass list as plain
// files in the configuration directory, in formats an operator can edit by
// hand.
package file
