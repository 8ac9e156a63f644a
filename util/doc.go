// Package util holds small string helpers shared by the config and CLI code.
package util
