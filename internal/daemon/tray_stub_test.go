//go:build !windows
// +build !windows

package daemon

import "testing"

func TestNewTrayApp_Unsupported(t *testing.T) {
	d := newTestDaemon(t)
	if _, err := NewTrayApp(d, d.logger); err == nil {
		t.Error("NewTrayApp() expected error on this platform")
	}
}
