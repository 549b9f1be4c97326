// Package utils contains the decorators shared by every application
// stack: logging, panic recovery, savepoints and metrics.
package utils
