/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but are only initialised on the first
// command that needs the store. The service is created once and shared
// across extensions through the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/document"
	"github.com/jpl-au/pubd/internal/log"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
var noStoreCommands map[string]bool

// authorRequiredCommands lists commands that modify objects.
var authorRequiredCommands = map[string]bool{
	"write":     true,
	"rm":        true,
	"restore":   true,
	"import":    true,
	"publish":   true,
	"unpublish": true,
	"tag":       true,
	"vacuum":    true,
}

// buildNoStoreCommands returns the bootstrap commands plus any that
// extensions declare through extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	extService *document.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the object service and injects it into every
// Initializable extension. It runs at most once per process.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := openService()
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetProject(svc.Dir())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, cfg)
		svc.SetExtensionContext(extContext)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// openService honours --dir before falling back to discovery.
func openService() (*document.Service, error) {
	if d := Dir(); d != "" {
		return document.OpenDir(d, DB())
	}
	return document.New(DB())
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
