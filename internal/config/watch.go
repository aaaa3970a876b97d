// file: internal/config/watch.go
// version: 1.0.0
// guid: 2d4f6a8c-0b1e-4c3d-9e5f-7a9b1c3d5e7f

package config

import (
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var watchOnce sync.Once

// Watch re-reads the configuration whenever the config file changes and
// invokes onReload with the fresh values. Used by the serve command so
// tag-mapping edits apply without a restart; lookups in flight keep the
// mapper they started with.
func Watch(onReload func(Config)) {
	watchOnce.Do(func() {
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("[INFO] config file changed: %s", e.Name)
			InitConfig()
			if onReload != nil {
				onReload(AppConfig)
			}
		})
		viper.WatchConfig()
	})
}
