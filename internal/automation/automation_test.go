package automation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/environment"
	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/trajectory"
)

func quietEngine() *trajectory.Engine {
	return trajectory.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var base = trajectory.Launch{Speed: 30, AngleDeg: 45, Mass: 0.1, Radius: 0.05}

func TestLoadAndRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `name: planets
description: same throw everywhere
steps:
  - name: earth
    planet: earth
  - name: moon-no-drag
    planet: moon
    drag: false
  - preset: baseball
    angle: 30
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(sc.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(sc.Steps))
	}

	results, err := RunScenario(context.Background(), quietEngine(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if results[0].Run.Env.Name != "Earth" || results[1].Run.Env.Name != "Moon" {
		t.Errorf("unexpected environments %s, %s", results[0].Run.Env.Name, results[1].Run.Env.Name)
	}
	if results[1].Run.Method != trajectory.MethodAnalytic {
		t.Errorf("drag-free step should be analytic, got %s", results[1].Run.Method)
	}
	if results[2].Name != "step-3" || results[2].Run.Launch.AngleDeg != 30 || results[2].Run.Launch.Speed != 40 {
		t.Errorf("preset override not applied: %+v", results[2].Run.Launch)
	}
	if results[1].Summary.Range <= results[0].Summary.Range {
		t.Error("moon range should exceed earth range")
	}
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("name: nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Name: "bad", Steps: []ScenarioStep{{Preset: "nope"}}}
	if _, err := RunScenario(context.Background(), quietEngine(), sc); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestRunSweepAngle(t *testing.T) {
	sweep := &ParameterSweep{
		Env:      environment.Moon(),
		Base:     base,
		Param:    ParamAngle,
		Min:      15,
		Max:      75,
		NumSteps: 5,
	}
	results, err := RunSweep(context.Background(), quietEngine(), sweep)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 5 || results[2].Value != 45 {
		t.Fatalf("unexpected sweep values %+v", results)
	}
	for i, r := range results {
		if i != 2 && r.Summary.Range >= results[2].Summary.Range {
			t.Errorf("vacuum range at %g° should be below 45°", r.Value)
		}
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	sweep := &ParameterSweep{Env: environment.Earth(), Base: base, Param: "spin", Min: 1, Max: 2, NumSteps: 2}
	_, err := RunSweep(context.Background(), quietEngine(), sweep)
	if !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestMonteCarloReproducible(t *testing.T) {
	cfg := &MonteCarloConfig{
		Env:         environment.Earth(),
		Base:        base,
		SpeedSpread: 2,
		AngleSpread: 5,
		NumTrials:   8,
		Seed:        42,
	}
	a, err := RunMonteCarlo(context.Background(), quietEngine(), cfg)
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	b, err := RunMonteCarlo(context.Background(), quietEngine(), cfg)
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	for i := range a {
		if a[i].Launch != b[i].Launch {
			t.Fatalf("trial %d differs between seeded runs", i)
		}
	}

	d := MonteCarloStats(a)
	if d.LandedCount != len(a) {
		t.Errorf("expected every trial to land, got %d/%d", d.LandedCount, len(a))
	}
	if !(d.MinRange <= d.MeanRange && d.MeanRange <= d.MaxRange) {
		t.Errorf("mean %g outside [%g, %g]", d.MeanRange, d.MinRange, d.MaxRange)
	}
	if d.StdRange <= 0 {
		t.Errorf("expected spread in range, got std %g", d.StdRange)
	}
}

func TestMonteCarloStatsSingle(t *testing.T) {
	d := MonteCarloStats([]MonteCarloResult{{Summary: metrics.Summary{Range: 10}}})
	if d.StdRange != 0 || d.MeanRange != 10 {
		t.Errorf("unexpected dispersion %+v", d)
	}
}
