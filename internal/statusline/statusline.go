// Package statusline renders configured throughput components into a single
// line of text, once per tick.
package statusline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shini4i/netspeed/internal/config"
)

// Speeds is the query surface a status line reads rates from.
// *netspeed.Registry implements it.
type Speeds interface {
	RxSpeed(iface string) (string, bool)
	TxSpeed(iface string) (string, bool)
	RxSpeedAll() (string, bool)
	TxSpeedAll() (string, bool)
}

// Line renders a fixed list of components.
type Line struct {
	components  []config.Component
	speeds      Speeds
	placeholder string
	separator   string
}

// New creates a line from a validated configuration.
func New(cfg *config.Config, speeds Speeds) *Line {
	return &Line{
		components:  append([]config.Component(nil), cfg.Components...),
		speeds:      speeds,
		placeholder: cfg.Placeholder,
		separator:   cfg.Separator,
	}
}

// Render queries every component once and joins the results.
// Components without a result show the placeholder.
func (l *Line) Render() string {
	parts := make([]string, 0, len(l.components))
	for _, c := range l.components {
		value, ok := l.query(c)
		if !ok {
			value = l.placeholder
		}
		parts = append(parts, fmt.Sprintf(c.Format, value))
	}
	return strings.Join(parts, l.separator)
}

func (l *Line) query(c config.Component) (string, bool) {
	switch c.Function {
	case config.FuncRx:
		return l.speeds.RxSpeed(c.Argument)
	case config.FuncTx:
		return l.speeds.TxSpeed(c.Argument)
	case config.FuncRxAll:
		return l.speeds.RxSpeedAll()
	case config.FuncTxAll:
		return l.speeds.TxSpeedAll()
	default:
		slog.Warn("Unknown status line function", "function", c.Function)
		return "", false
	}
}

// Run writes one rendered line to w immediately and then on every tick of
// interval, until ctx is cancelled or a write fails.
func (l *Line) Run(ctx context.Context, w io.Writer, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("non-positive interval %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := fmt.Fprintln(w, l.Render()); err != nil {
			return fmt.Errorf("write status line: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
