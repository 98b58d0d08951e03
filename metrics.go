/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http/pprof"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Seednode/geoquiz/session"
)

var (
	gamesActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "geoquiz_games_active",
		Help: "Number of game hubs currently open",
	})
	sessionsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoquiz_sessions_started_total",
		Help: "Sessions started, by mode",
	}, []string{"mode"})
	sessionsFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoquiz_sessions_finished_total",
		Help: "Sessions that ran to completion, by mode",
	}, []string{"mode"})
	sessionsStopped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_sessions_stopped_total",
		Help: "Sessions aborted before finishing",
	})
	answersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoquiz_answers_total",
		Help: "Accepted answers, by mode and correctness",
	}, []string{"mode", "correct"})
	finalScores = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geoquiz_final_score",
		Help:    "Final single-player score, or the higher duo score",
		Buckets: []float64{0, 10, 20, 50, 100, 150, 200, 300, 500},
	}, []string{"mode"})
)

func init() {
	prometheus.MustRegister(gamesActive)
	prometheus.MustRegister(sessionsStarted)
	prometheus.MustRegister(sessionsFinished)
	prometheus.MustRegister(sessionsStopped)
	prometheus.MustRegister(answersTotal)
	prometheus.MustRegister(finalScores)
}

// observe records a session event in the metrics above.
func observe(e session.Event) {
	switch ev := e.(type) {
	case session.SessionStarted:
		sessionsStarted.WithLabelValues(string(ev.HUD.Mode)).Inc()
	case session.AnswerEvaluated:
		answersTotal.WithLabelValues(string(ev.HUD.Mode), strconv.FormatBool(ev.IsCorrect)).Inc()
	case session.SessionFinished:
		mode := string(ev.Summary.Mode)
		sessionsFinished.WithLabelValues(mode).Inc()
		finalScores.WithLabelValues(mode).Observe(float64(max(ev.Summary.Score, ev.Summary.Player1Score, ev.Summary.Player2Score)))
	case session.SessionStopped:
		sessionsStopped.Inc()
	}
}

func registerMetricsHandler(cfg *Config, mux *httprouter.Router) {
	mux.Handler("GET", cfg.prefix+"/metrics", promhttp.Handler())
}

func registerProfileHandlers(cfg *Config, mux *httprouter.Router) {
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		mux.Handler("GET", cfg.prefix+"/pprof/"+name, pprof.Handler(name))
	}
	mux.HandlerFunc("GET", cfg.prefix+"/pprof/cmdline", pprof.Cmdline)
	mux.HandlerFunc("GET", cfg.prefix+"/pprof/profile", pprof.Profile)
	mux.HandlerFunc("GET", cfg.prefix+"/pprof/symbol", pprof.Symbol)
	mux.HandlerFunc("GET", cfg.prefix+"/pprof/trace", pprof.Trace)
}
