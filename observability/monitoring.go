package observability

import (
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProcessStats is filled by the health monitoring worker.
type ProcessStats struct {
	CPUPercent float64 `json:"cpu_percent"`
	RSSMb      uint64  `json:"rss_mb"`
	Status     string  `json:"status"`
	SampledAt  string  `json:"sampled_at"`
}

// QueueStats is the last sampled fill of an internal queue.
type QueueStats struct {
	Length   int `json:"length"`
	Capacity int `json:"capacity"`
}

// MonitoringStats is the snapshot served on /stats.
type MonitoringStats struct {
	OnlineConnections int64  `json:"online_connections"`
	FramesReceived    uint64 `json:"frames_received"`
	MessagesPersisted uint64 `json:"messages_persisted"`
	EventsDelivered   uint64 `json:"events_delivered"`
	EventsDropped     uint64 `json:"events_dropped"`
	PipelineErrors    uint64 `json:"pipeline_errors"`
	DeliveryGaps      uint64 `json:"delivery_gaps"`
	TypingExpired     uint64 `json:"typing_expired"`

	AllocMemMb uint64       `json:"alloc_mem_mb"`
	NumGC      uint32       `json:"num_gc"`
	Goroutines int          `json:"goroutines"`
	Process    ProcessStats `json:"process"`

	Queues map[string]QueueStats `json:"queues,omitempty"`
}

// MonitoringManager keeps in-process counters for /stats and mirrors them
// into Prometheus collectors for /metrics.
type MonitoringManager struct {
	log *slog.Logger
	mu  sync.RWMutex

	process ProcessStats
	queues  map[string]QueueStats

	onlineConnections int64
	framesReceived    uint64
	messagesPersisted uint64
	eventsDelivered   uint64
	eventsDropped     uint64
	pipelineErrors    uint64
	deliveryGaps      uint64
	typingExpired     uint64

	registry    *prometheus.Registry
	connections prometheus.Gauge
	frames      *prometheus.CounterVec
	failures    *prometheus.CounterVec
	delivered   prometheus.Counter
	dropped     prometheus.Counter
	gaps        prometheus.Counter
	persisted   prometheus.Counter
	rss         prometheus.Gauge
	cpu         prometheus.Gauge
	queueLength *prometheus.GaugeVec
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	mm := &MonitoringManager{
		log:      log,
		queues:   make(map[string]QueueStats),
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chat_ws_active_connections",
			Help: "Active websocket connections",
		}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_ws_frames_received_total",
			Help: "Inbound frames by type",
		}, []string{"type"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_pipeline_failures_total",
			Help: "Inbound frames answered with an Error, by pipeline stage",
		}, []string{"stage"}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_events_delivered_total",
			Help: "Events queued on a live connection",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_events_dropped_total",
			Help: "Events not queued because the connection was gone or saturated",
		}),
		gaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_delivery_gaps_total",
			Help: "Messages persisted but never broadcast",
		}),
		persisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_messages_persisted_total",
			Help: "Messages inserted by the pipeline",
		}),
		rss: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chat_process_rss_bytes",
			Help: "Resident memory sampled by the health worker",
		}),
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chat_process_cpu_percent",
			Help: "CPU usage sampled by the health worker",
		}),
		queueLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chat_queue_length",
			Help: "Pending items of internal queues, sampled",
		}, []string{"queue"}),
	}
	mm.registry.MustRegister(
		mm.connections, mm.frames, mm.failures, mm.delivered, mm.dropped,
		mm.gaps, mm.persisted, mm.rss, mm.cpu, mm.queueLength,
		collectors.NewGoCollector(),
	)
	return mm
}

func (mm *MonitoringManager) ConnectionOpened() {
	atomic.AddInt64(&mm.onlineConnections, 1)
	mm.connections.Inc()
}

func (mm *MonitoringManager) ConnectionClosed() {
	atomic.AddInt64(&mm.onlineConnections, -1)
	mm.connections.Dec()
}

func (mm *MonitoringManager) IncrFrameReceived(frameType string) {
	atomic.AddUint64(&mm.framesReceived, 1)
	mm.frames.WithLabelValues(frameType).Inc()
}

func (mm *MonitoringManager) IncrPipelineError(stage string) {
	atomic.AddUint64(&mm.pipelineErrors, 1)
	mm.failures.WithLabelValues(stage).Inc()
}

func (mm *MonitoringManager) IncrMessagePersisted() {
	atomic.AddUint64(&mm.messagesPersisted, 1)
	mm.persisted.Inc()
}

func (mm *MonitoringManager) IncrDelivered(n int) {
	atomic.AddUint64(&mm.eventsDelivered, uint64(n))
	mm.delivered.Add(float64(n))
}

func (mm *MonitoringManager) IncrDropped() {
	atomic.AddUint64(&mm.eventsDropped, 1)
	mm.dropped.Inc()
}

func (mm *MonitoringManager) IncrDeliveryGap() {
	atomic.AddUint64(&mm.deliveryGaps, 1)
	mm.gaps.Inc()
}

func (mm *MonitoringManager) IncrTypingExpired(n int) {
	atomic.AddUint64(&mm.typingExpired, uint64(n))
}

func (mm *MonitoringManager) UpdateProcess(status string, cpu float64, rssBytes uint64) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.process = ProcessStats{
		CPUPercent: cpu,
		RSSMb:      rssBytes / 1024 / 1024,
		Status:     status,
		SampledAt:  time.Now().UTC().Format(time.RFC3339),
	}
	mm.rss.Set(float64(rssBytes))
	mm.cpu.Set(cpu)
	mm.log.Debug("Process sampled", "status", status, "cpu", cpu, "rss_mb", mm.process.RSSMb)
}

func (mm *MonitoringManager) UpdateQueue(name string, length, capacity int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.queues[name] = QueueStats{Length: length, Capacity: capacity}
	mm.queueLength.WithLabelValues(name).Set(float64(length))
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	process := mm.process
	queues := make(map[string]QueueStats, len(mm.queues))
	for name, q := range mm.queues {
		queues[name] = q
	}
	mm.mu.RUnlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MonitoringStats{
		OnlineConnections: atomic.LoadInt64(&mm.onlineConnections),
		FramesReceived:    atomic.LoadUint64(&mm.framesReceived),
		MessagesPersisted: atomic.LoadUint64(&mm.messagesPersisted),
		EventsDelivered:   atomic.LoadUint64(&mm.eventsDelivered),
		EventsDropped:     atomic.LoadUint64(&mm.eventsDropped),
		PipelineErrors:    atomic.LoadUint64(&mm.pipelineErrors),
		DeliveryGaps:      atomic.LoadUint64(&mm.deliveryGaps),
		TypingExpired:     atomic.LoadUint64(&mm.typingExpired),
		AllocMemMb:        m.Alloc / 1024 / 1024,
		NumGC:             m.NumGC,
		Goroutines:        runtime.NumGoroutine(),
		Process:           process,
		Queues:            queues,
	}
}

// Handler exposes the collectors in the Prometheus text format.
func (mm *MonitoringManager) Handler() http.Handler {
	return promhttp.HandlerFor(mm.registry, promhttp.HandlerOpts{})
}
