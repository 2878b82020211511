package tracelog

import "sync"

var testInitOnce sync.Once
var testGuard *Guard

// InitTestLogging installs a debug-level file pipeline writing under
// TestLogDir. It runs at most once per process and keeps its guard
// internally, so test binaries can call it from any number of packages
// without coordinating. When the global pipeline is already installed it
// leaves it alone.
func InitTestLogging() {
	testInitOnce.Do(func() {
		cfg := DefaultConfig()
		cfg.LogDir = TestLogDir
		cfg.Level = "debug"
		cfg.ConsoleLogging = false

		guard, err := Init("unittest", cfg)
		if err != nil {
			return
		}
		testGuard = guard
	})
}
