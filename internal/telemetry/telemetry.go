// Package telemetry implements sat.Observer with structured logrus output,
// replacing the raw fmt.Printf search-stats printer with leveled, field-based
// log lines that compose with whatever else a host process logs.
package telemetry

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eastlake-labs/cdcl-sat/internal/sat"
)

// LogObserver emits a Debug line per event and an Info summary every
// restart. The summary fields (conflicts, restarts, learnts, elapsed) are
// cheap running counters, not a full stats snapshot.
type LogObserver struct {
	log       *logrus.Entry
	start     time.Time
	decisions int64
	conflicts int64
	restarts  int64
	learnts   int64
}

// NewLogObserver returns a LogObserver writing through log, or through
// logrus.StandardLogger() if log is nil.
func NewLogObserver(log *logrus.Logger) *LogObserver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogObserver{
		log:   log.WithField("component", "sat"),
		start: time.Now(),
	}
}

func (o *LogObserver) OnDecision() {
	o.decisions++
	o.log.Debug("decision")
}

func (o *LogObserver) OnConflict() {
	o.conflicts++
	o.log.Debug("conflict")
}

func (o *LogObserver) OnRestart() {
	o.restarts++
	o.log.WithFields(logrus.Fields{
		"conflicts": o.conflicts,
		"restarts":  o.restarts,
		"learnts":   o.learnts,
		"elapsed":   time.Since(o.start),
	}).Info("restart")
}

func (o *LogObserver) OnLearn(size, lbd int) {
	o.learnts++
	o.log.WithFields(logrus.Fields{"size": size, "lbd": lbd}).Debug("learn")
}

func (o *LogObserver) OnPropagation() {
	o.log.Debug("propagation")
}

var _ sat.Observer = (*LogObserver)(nil)
