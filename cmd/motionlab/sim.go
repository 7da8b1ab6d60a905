package main

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/motion-lab/internal/lab"
	"github.com/vovakirdan/motion-lab/internal/sim"
)

var (
	flagSimLevel  int
	flagSimTicks  int
	flagSimInput  string
	flagSimPlot   string
	flagSimYAML   bool
	flagSimToEnd  bool
	flagSimHeight int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a level without a terminal UI",
	Long: `Replay a scripted sequence of key presses against one level and print
the readout for every tick, plot one quantity, or dump the run as YAML.

The input script is a comma-separated list of tick:direction presses;
an xN suffix repeats the press N times on the same tick.

Examples:
  motionlab sim --level 1 --input "0:up x4" --ticks 120
  motionlab sim --level 3 --input "0:down x50" --plot KE
  motionlab sim --level 5 --plot y --ticks 100
  motionlab sim --level 4 --input "0:up x3" --yaml`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Level to run (1-5)")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 300, "Maximum number of ticks")
	simCmd.Flags().StringVar(&flagSimInput, "input", "", `Input script, e.g. "0:up x4,10:down"`)
	simCmd.Flags().StringVar(&flagSimPlot, "plot", "", "Plot one quantity (x, y, ticks or a readout field)")
	simCmd.Flags().BoolVar(&flagSimYAML, "yaml", false, "Print the run as YAML")
	simCmd.Flags().BoolVar(&flagSimToEnd, "run-past-over", false, "Keep ticking after the level is over")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 15, "Plot height in rows")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimTicks <= 0 {
		return fmt.Errorf("sim: --ticks must be positive, got %d", flagSimTicks)
	}

	script, err := sim.ParseScript(flagSimInput)
	if err != nil {
		return err
	}

	machine := lab.New(loadLabConfig())
	if err := sim.Start(machine, flagSimLevel); err != nil {
		return err
	}

	trace, err := sim.Run(machine, script, sim.Options{
		Ticks:      flagSimTicks,
		StopOnOver: !flagSimToEnd,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case flagSimYAML:
		return writeTraceYAML(out, trace)
	case flagSimPlot != "":
		return writeTracePlot(out, trace, flagSimPlot, flagSimHeight)
	}
	writeTraceText(out, trace)
	return nil
}

func writeTraceText(w io.Writer, trace sim.Trace) {
	for _, s := range trace.Snapshots {
		marker := ""
		if s.Over {
			marker = "  [over]"
		}
		fmt.Fprintf(w, "%5d  %s%s\n", s.Ticks, s.Label, marker)
	}

	final := trace.Final()
	fmt.Fprintln(w)
	if final.Over {
		fmt.Fprintf(w, "Level %d over after %d ticks.\n", final.Level, final.Ticks)
	} else {
		fmt.Fprintf(w, "Level %d still running after %d ticks.\n", final.Level, final.Ticks)
	}
}

func writeTracePlot(w io.Writer, trace sim.Trace, name string, height int) error {
	series, err := trace.Series(name)
	if err != nil {
		return err
	}

	final := trace.Final()
	caption := fmt.Sprintf("%s over %d ticks (level %d: %s)", name, final.Ticks, final.Level, final.Name)
	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(w, graph)
	return nil
}

// simRecord is the YAML form of one snapshot.
type simRecord struct {
	Tick   int                `yaml:"tick"`
	X      float64            `yaml:"x"`
	Y      float64            `yaml:"y"`
	Over   bool               `yaml:"over"`
	Fields map[string]float64 `yaml:"fields"`
}

type simDump struct {
	Level    int         `yaml:"level"`
	Name     string      `yaml:"name"`
	Complete bool        `yaml:"complete"`
	Ticks    []simRecord `yaml:"ticks"`
}

func writeTraceYAML(w io.Writer, trace sim.Trace) error {
	final := trace.Final()
	dump := simDump{
		Level:    final.Level,
		Name:     final.Name,
		Complete: final.Complete,
		Ticks:    make([]simRecord, 0, len(trace.Snapshots)),
	}
	for _, s := range trace.Snapshots {
		rec := simRecord{
			Tick:   s.Ticks,
			X:      s.X,
			Y:      s.Y,
			Over:   s.Over,
			Fields: make(map[string]float64, len(s.Fields)),
		}
		for _, f := range s.Fields {
			rec.Fields[f.Name] = f.Value
		}
		dump.Ticks = append(dump.Ticks, rec)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("sim: cannot encode trace: %w", err)
	}
	return enc.Close()
}
