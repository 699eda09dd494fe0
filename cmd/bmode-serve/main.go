// bmode-serve streams live B-mode frames to browser clients over a
// websocket, one engine per connection, and exposes Prometheus metrics
// for frame timing.
//
// Endpoints:
//
//	GET /ws?preset=cyst&freq=7.5&depth=8&gain=55   PNG frames, binary messages
//	GET /api/presets                               available anatomy presets
//	GET /metrics                                   Prometheus metrics
//	GET /healthz                                   liveness probe
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sonolab/bmode"
	"github.com/sonolab/bmode/surface"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// server holds shared state for the HTTP handlers.
type server struct {
	width  int
	height int
	fps    float64

	framesTotal    prometheus.Counter
	clientsActive  prometheus.Gauge
	renderDuration prometheus.Histogram
}

func newServer(width, height int, fps float64) *server {
	return &server{
		width:  width,
		height: height,
		fps:    fps,
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bmode_frames_streamed_total",
			Help: "Frames rendered and streamed to websocket clients.",
		}),
		clientsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bmode_stream_clients",
			Help: "Currently connected websocket clients.",
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bmode_render_duration_seconds",
			Help:    "Wall time of one frame render.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
}

// setupMux wires all routes:
// - Prometheus metric endpoint
// - Websocket frame stream
// - Preset listing for UI pickers
func (s *server) setupMux(reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.HandleFunc("/ws", s.streamHandler)
	r.HandleFunc("/api/presets", s.presetsHandler)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (s *server) presetsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"presets": bmode.PresetNames()}); err != nil {
		slog.Error("encoding preset list", slog.Any("error", err))
	}
}

// streamHandler upgrades the connection and pushes PNG-encoded frames
// on a ticker until the client goes away. Each connection owns its own
// engine and surface.
func (s *server) streamHandler(w http.ResponseWriter, r *http.Request) {
	cfg := configFromQuery(r)

	surf := surface.NewImageSurface(s.width, s.height)
	eng, err := bmode.New(surf, cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer eng.Destroy()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	s.clientsActive.Inc()
	defer s.clientsActive.Dec()
	slog.Info("stream started",
		slog.String("remote", r.RemoteAddr),
		slog.String("preset", cfg.Anatomy.Name))

	interval := time.Duration(float64(time.Second) / s.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var buf bytes.Buffer
	for range ticker.C {
		start := time.Now()
		if err := eng.RenderFrame(); err != nil {
			slog.Warn("render failed", slog.Any("error", err))
			return
		}
		s.renderDuration.Observe(time.Since(start).Seconds())

		buf.Reset()
		frame := bmode.NewFrame(s.width, s.height)
		copyGray(frame, surf)
		if err := frame.EncodePNG(&buf); err != nil {
			slog.Warn("encode failed", slog.Any("error", err))
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
			return // connection closed
		}
		s.framesTotal.Inc()
	}
}

// copyGray pulls the rendered surface contents back into a grayscale
// frame for compact PNG encoding (the red channel carries the image).
func copyGray(dst *bmode.Frame, src *surface.ImageSurface) {
	img := src.Image()
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			dst.SetIntensity(x, y, float64(img.Pix[y*img.Stride+x*4])/255)
		}
	}
}

// configFromQuery builds an engine config from the request query.
// Bad values are left to the engine's clamping.
func configFromQuery(r *http.Request) bmode.Config {
	q := r.URL.Query()

	anatomy := bmode.Preset(q.Get("preset"))
	if anatomy == nil {
		anatomy = bmode.PresetSoftTissueVessel()
	}
	cfg := bmode.Config{
		Anatomy:      anatomy,
		FrequencyMHz: floatParam(q.Get("freq"), 7.5),
		ScanDepthCm:  floatParam(q.Get("depth"), 6),
		FocusDepthCm: floatParam(q.Get("focus"), 3),
		Gain:         floatParam(q.Get("gain"), 55),
	}
	if q.Get("transducer") == "convex" {
		cfg.Transducer = bmode.TransducerConvex
	}
	if q.Get("overlays") == "1" {
		cfg.Overlay = bmode.OverlayFlags{DepthRuler: true, FocusMarker: true, Labels: true}
	}
	return cfg
}

func floatParam(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func main() {
	var (
		addr   = flag.String("addr", ":8090", "listen address")
		width  = flag.Int("width", 512, "stream raster width")
		height = flag.Int("height", 512, "stream raster height")
		fps    = flag.Float64("fps", 15, "stream frame rate")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	bmode.SetLogger(slog.Default())

	srv := newServer(*width, *height, *fps)
	reg := prometheus.NewRegistry()
	reg.MustRegister(srv.framesTotal, srv.clientsActive, srv.renderDuration)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.setupMux(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("bmode-serve listening", slog.String("addr", *addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
