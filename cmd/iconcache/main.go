// Command iconcache serves and queries the icon cache.
package main

import (
	"log/slog"
	"os"
	"runtime/debug"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("PANIC", "error", r, "stack", string(debug.Stack()))
			os.Exit(2)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Error", "error", err)
		os.Exit(1)
	}
}
