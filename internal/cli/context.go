// Package cli provides the command-line interface for linkresolve.
package cli

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/law-makers/linkresolve/internal/app"
)

var (
	appMu     sync.RWMutex
	globalApp *app.Application
)

// SetApp stores the Application shared by the command tree
func SetApp(_ *cobra.Command, a *app.Application) {
	appMu.Lock()
	defer appMu.Unlock()
	globalApp = a
}

// GetApp returns the Application created for the running command, or nil
// before PersistentPreRunE has run.
func GetApp() *app.Application {
	appMu.RLock()
	defer appMu.RUnlock()
	return globalApp
}
