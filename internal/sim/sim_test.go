package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/motion-lab/internal/config"
	"github.com/vovakirdan/motion-lab/internal/lab"
)

func TestParseScript(t *testing.T) {
	script, err := ParseScript("10:down, 0:up x3,5:u")
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}

	want := Script{
		{0, lab.Up}, {0, lab.Up}, {0, lab.Up},
		{5, lab.Up},
		{10, lab.Down},
	}
	if len(script) != len(want) {
		t.Fatalf("got %d presses, expected %d: %+v", len(script), len(want), script)
	}
	for i := range want {
		if script[i] != want[i] {
			t.Errorf("press %d = %+v, expected %+v", i, script[i], want[i])
		}
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []string{
		"up",
		"x:up",
		"-1:up",
		"0:left",
		"0:up x0",
		"0:up xz",
	}
	for _, in := range tests {
		if _, err := ParseScript(in); err == nil {
			t.Errorf("ParseScript(%q) should fail", in)
		}
	}

	if _, err := ParseScript("0:sideways"); !errors.Is(err, lab.ErrInvalidDirection) {
		t.Errorf("expected ErrInvalidDirection to be wrapped, got %v", err)
	}

	if script, err := ParseScript("  "); err != nil || len(script) != 0 {
		t.Errorf("empty script = %+v, %v", script, err)
	}
}

func TestRunForceLevelToWall(t *testing.T) {
	m := lab.New(config.DefaultLabConfig())
	script, _ := ParseScript("0:up x10")

	trace, err := Run(m, script, Options{Ticks: 1000, StopOnOver: true})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	final := trace.Final()
	if !final.Over || final.X != 680 {
		t.Errorf("final snapshot = %+v, expected over at x=680", final)
	}
	if len(trace.Snapshots) != final.Ticks+1 {
		t.Errorf("trace has %d snapshots for %d ticks", len(trace.Snapshots), final.Ticks)
	}

	xs, err := trace.Series("x")
	if err != nil {
		t.Fatalf("Series(x) failed: %v", err)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			t.Fatalf("x decreased at tick %d: %g -> %g", i, xs[i-1], xs[i])
		}
	}
}

func TestRunRespectsTickLimit(t *testing.T) {
	m := lab.New(config.DefaultLabConfig())
	if err := Start(m, 2); err != nil {
		t.Fatal(err)
	}

	trace, err := Run(m, nil, Options{Ticks: 25})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := len(trace.Snapshots); got != 26 {
		t.Errorf("expected 26 snapshots, got %d", got)
	}
	if trace.Final().Over {
		t.Error("level 2 without input should not finish")
	}
}

func TestRunScheduledPress(t *testing.T) {
	m := lab.New(config.DefaultLabConfig())
	if err := Start(m, 2); err != nil {
		t.Fatal(err)
	}
	script, _ := ParseScript("3:up")

	trace, err := Run(m, script, Options{Ticks: 5})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	xs, _ := trace.Series("x")
	want := []float64{100, 100, 100, 100, 105, 110}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("x[%d] = %g, expected %g", i, xs[i], want[i])
		}
	}
}

func TestSeriesUnknownField(t *testing.T) {
	m := lab.New(config.DefaultLabConfig())
	trace, _ := Run(m, nil, Options{Ticks: 2})

	if _, err := trace.Series("momentum"); err == nil {
		t.Error("Series(momentum) on level 1 should fail")
	}
}

func TestStartRejectsBadLevel(t *testing.T) {
	m := lab.New(config.DefaultLabConfig())
	if err := Start(m, 9); !errors.Is(err, lab.ErrInvalidLevel) {
		t.Errorf("Start(9) = %v, expected ErrInvalidLevel", err)
	}
}
