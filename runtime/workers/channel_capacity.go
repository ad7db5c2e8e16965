package workers

import (
	"chat-live/observability"
	"context"
	"log/slog"
	"reflect"
	"time"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacityWorker periodically samples the length and capacity of
// internal queues. Reading len and cap of a channel never blocks, so the
// sampling does not interfere with the goroutines using it.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	monitor        *observability.MonitoringManager
	metricInterval time.Duration
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel,
	monitor *observability.MonitoringManager, metricInterval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:            log,
		channels:       channels,
		monitor:        monitor,
		metricInterval: metricInterval,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *ChannelCapacityWorker) sample() {
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		length, capacity := v.Len(), v.Cap()
		w.monitor.UpdateQueue(nc.Name, length, capacity)
		if capacity > 0 && length*10 >= capacity*9 {
			w.log.Warn("Queue almost full", "name", nc.Name, "length", length, "capacity", capacity)
		}
	}
}
