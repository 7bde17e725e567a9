package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/tariff-blocks/internal/timeblock"
	"github.com/username/tariff-blocks/pkg/dateutil"
	"go.uber.org/zap"
)

// maxLookahead bounds the search for the next block change
const maxLookahead = 48

// Transition is a change of the active time block
type Transition struct {
	At         time.Time
	From       *timeblock.CurrentBlock
	To         *timeblock.CurrentBlock
	NextChange time.Time
}

// Daemon watches the clock and reports time block changes
type Daemon struct {
	resolver      *timeblock.Resolver
	location      *time.Location
	checkInterval time.Duration
	systemTray    bool
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	trayApp       *TrayApp
	now           func() time.Time
	onChange      func(Transition)

	mu        sync.Mutex // Protects current and lastCheck
	current   *timeblock.CurrentBlock
	lastCheck time.Time
}

// NewDaemon creates a new daemon instance
func NewDaemon(resolver *timeblock.Resolver, location *time.Location, checkInterval time.Duration, systemTray bool, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	if location == nil {
		location = time.Local
	}

	return &Daemon{
		resolver:      resolver,
		location:      location,
		checkInterval: checkInterval,
		systemTray:    systemTray,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		now:           time.Now,
	}
}

// OnChange registers a callback invoked after every block change
func (d *Daemon) OnChange(fn func(Transition)) {
	d.onChange = fn
}

// Start starts the daemon and blocks until it is stopped
func (d *Daemon) Start() error {
	// Initialize system tray if enabled (Windows only)
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			d.runLoop()
			return nil
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	d.runLoop()
	return nil
}

// runLoop checks the active block on every tick until stopped
func (d *Daemon) runLoop() {
	d.logger.Info("Daemon started",
		zap.Duration("check_interval", d.checkInterval),
		zap.String("timezone", d.location.String()))

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Run initial check immediately
	d.Check(d.now())

	ticker := time.NewTicker(d.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()

		case now := <-ticker.C:
			d.Check(now)
		}
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// Check resolves the block active at now and reports whether it differs
// from the previous check. The first check always counts as a change.
func (d *Daemon) Check(now time.Time) (Transition, bool) {
	now = now.In(d.location)
	block := d.resolver.CurrentTimeBlock(now)

	d.mu.Lock()
	previous := d.current
	checked := !d.lastCheck.IsZero()
	d.current = block
	d.lastCheck = now
	d.mu.Unlock()

	if checked && sameBlock(previous, block) {
		d.logger.Debug("Time block unchanged",
			zap.Time("time", now),
			zap.Int("block", blockID(block)))
		return Transition{}, false
	}

	transition := Transition{
		At:         now,
		From:       previous,
		To:         block,
		NextChange: d.NextChange(now),
	}

	d.logger.Info("Time block changed",
		zap.Time("time", now),
		zap.Int("from", blockID(previous)),
		zap.Int("to", blockID(block)),
		zap.Time("next_change", transition.NextChange))

	if d.onChange != nil {
		d.onChange(transition)
	}

	return transition, true
}

func sameBlock(a, b *timeblock.CurrentBlock) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// NextChange returns the start of the first hour after now whose block id
// differs from the one active at now. A zero time means no change was found
// within the lookahead window.
func (d *Daemon) NextChange(now time.Time) time.Time {
	now = now.In(d.location)
	currentID := blockID(d.resolver.CurrentTimeBlock(now))

	next := dateutil.NextHour(now)
	for i := 0; i < maxLookahead; i++ {
		if blockID(d.resolver.CurrentTimeBlock(next)) != currentID {
			return next
		}
		next = dateutil.NextHour(next)
	}
	return time.Time{}
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() map[string]interface{} {
	d.mu.Lock()
	current := d.current
	lastCheck := d.lastCheck
	d.mu.Unlock()

	status := map[string]interface{}{
		"running":        d.ctx.Err() == nil,
		"check_interval": d.checkInterval.String(),
		"timezone":       d.location.String(),
	}

	if !lastCheck.IsZero() {
		status["last_check"] = lastCheck.Format(time.RFC3339)
	}

	if current != nil {
		status["block"] = map[string]interface{}{
			"id":          current.ID,
			"start":       current.Start,
			"end":         current.End,
			"overnight":   current.IsOvernight,
			"next_change": d.NextChange(lastCheck).Format(time.RFC3339),
		}
	}

	return status
}

// Describe formats a block for status lines and the tray tooltip
func Describe(block *timeblock.CurrentBlock) string {
	if block == nil {
		return "No time block"
	}
	return fmt.Sprintf("Blok %d (%02d:00-%02d:00)", block.ID, block.Start, block.End)
}

func blockID(block *timeblock.CurrentBlock) int {
	if block == nil {
		return 0
	}
	return block.ID
}
