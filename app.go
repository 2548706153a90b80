package main

import (
	"context"
	"fmt"
	"time"

	"github.com/chazu/enclose/pkg/config"
	"github.com/chazu/enclose/pkg/engine"
	"github.com/chazu/enclose/pkg/graph"
	"github.com/chazu/enclose/pkg/kernel"
	"github.com/chazu/enclose/pkg/kernel/sdfx"
	"github.com/chazu/enclose/pkg/locator"
	"github.com/chazu/enclose/pkg/metrics"
	"github.com/chazu/enclose/pkg/tessellate"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/sirupsen/logrus"
)

// App runs scene source through the whole pipeline: evaluation,
// validation, meshing and probe classification.
type App struct {
	engine  *engine.Engine
	kernel  kernel.Kernel
	log     logrus.FieldLogger
	workers int
	trace   bool
}

// SolidData summarises one meshed solid.
type SolidData struct {
	Name      string     `json:"name"`
	Vertices  int        `json:"vertices"`
	Triangles int        `json:"triangles"`
	Min       [3]float64 `json:"min"`
	Max       [3]float64 `json:"max"`
	Radius    float64    `json:"radius"`
}

// ClassificationData is the result of one probe against one solid.
type ClassificationData struct {
	Probe  string     `json:"probe"`
	Point  [3]float64 `json:"point"`
	Solid  string     `json:"solid"`
	Result string     `json:"result"`
}

// EvalErrorData is a JSON-serializable evaluation or validation finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is everything produced for one scene.
type EvalResult struct {
	Solids          []SolidData          `json:"solids"`
	Classifications []ClassificationData `json:"classifications"`
	Errors          []EvalErrorData      `json:"errors"`
	Warnings        []EvalErrorData      `json:"warnings"`
}

// OK reports whether the scene produced no errors.
func (r EvalResult) OK() bool { return len(r.Errors) == 0 }

// NewApp creates an App with a fresh engine and an sdfx kernel meshing at
// cfg.MeshCells.
func NewApp(cfg config.Config, log logrus.FieldLogger) *App {
	return &App{
		engine:  engine.NewEngine(engine.WithTimeout(cfg.Timeout)),
		kernel:  sdfx.NewWithResolution(cfg.MeshCells),
		log:     log,
		workers: cfg.Workers,
		trace:   cfg.Trace,
	}
}

// Evaluate takes scene source and classifies every probe against every
// solid. Cancelling ctx abandons the evaluation or stops classification.
func (a *App) Evaluate(ctx context.Context, source string) EvalResult {
	start := time.Now()
	result := a.evaluate(ctx, source)

	outcome := "ok"
	if !result.OK() {
		outcome = "error"
	}
	metrics.EvaluationsTotal.WithLabelValues(outcome).Inc()
	metrics.EvaluationDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	a.log.WithFields(logrus.Fields{
		"outcome":         outcome,
		"solids":          len(result.Solids),
		"classifications": len(result.Classifications),
		"elapsed":         time.Since(start),
	}).Info("scene evaluated")
	return result
}

func (a *App) evaluate(ctx context.Context, source string) EvalResult {
	result := EvalResult{
		Solids:          []SolidData{},
		Classifications: []ClassificationData{},
		Errors:          []EvalErrorData{},
		Warnings:        []EvalErrorData{},
	}
	fail := func(format string, args ...any) EvalResult {
		result.Errors = append(result.Errors, EvalErrorData{Message: fmt.Sprintf(format, args...)})
		return result
	}

	g, evalErrs, err := a.engine.Evaluate(ctx, source)
	if err != nil {
		a.log.WithError(err).Warn("evaluation failed")
		return fail("%v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}

	findings := graph.Validate(g)
	for _, f := range findings {
		d := EvalErrorData{Message: f.Error()}
		if f.Severity == graph.SeverityError {
			result.Errors = append(result.Errors, d)
		} else {
			result.Warnings = append(result.Warnings, d)
		}
	}
	if graph.HasErrors(findings) {
		return result
	}

	meshes, err := tessellate.Tessellate(g, a.kernel)
	if err != nil {
		a.log.WithError(err).Warn("tessellation failed")
		return fail("tessellation failed: %v", err)
	}

	locators := make([]*locator.Locator, len(meshes))
	for i, m := range meshes {
		metrics.MeshTriangles.Observe(float64(m.TriangleCount()))
		loc, err := locator.New(m, locator.WithTracer(a.tracer(m.PartName)))
		if err != nil {
			return fail("solid %q: %v", m.PartName, err)
		}
		locators[i] = loc

		b := loc.Bounds()
		result.Solids = append(result.Solids, SolidData{
			Name:      m.PartName,
			Vertices:  m.VertexCount(),
			Triangles: m.TriangleCount(),
			Min:       vecArray(b.Min),
			Max:       vecArray(b.Max),
			Radius:    b.Radius,
		})
	}

	points := make([]v3.Vec, len(g.Probes))
	for i, p := range g.Probes {
		points[i] = p.Point
	}
	for i, loc := range locators {
		res, err := loc.ClassifyAll(ctx, points, a.workers)
		if err != nil {
			return fail("classifying against %q: %v", meshes[i].PartName, err)
		}
		for j, r := range res {
			result.Classifications = append(result.Classifications, ClassificationData{
				Probe:  g.Probes[j].Label,
				Point:  vecArray(g.Probes[j].Point),
				Solid:  meshes[i].PartName,
				Result: r.String(),
			})
		}
	}
	return result
}

// tracer feeds every classification into the metrics and, when tracing is
// enabled, logs the ray that decided it.
func (a *App) tracer(solid string) locator.Tracer {
	if !a.trace {
		return metrics.Observe
	}
	log := a.log.WithField("solid", solid)
	return func(ev locator.TraceEvent) {
		metrics.Observe(ev)
		entry := log.WithFields(logrus.Fields{
			"point":  ev.Point,
			"result": ev.Result,
		})
		if ev.Rejection != locator.NotRejected {
			entry.WithField("rejected_by", ev.Rejection).Debug("classified")
			return
		}
		entry.WithFields(logrus.Fields{
			"direction": ev.Direction,
			"axis":      ev.Axis,
			"sign":      ev.Sign,
			"crossings": ev.Crossings,
			"parallel":  ev.Parallel,
		}).Debug("classified")
	}
}

func vecArray(v v3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
