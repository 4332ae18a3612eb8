package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/heliosim/internal/config"
	"github.com/san-kum/heliosim/internal/export"
	"github.com/san-kum/heliosim/internal/integrators"
	"github.com/san-kum/heliosim/internal/logger"
	"github.com/san-kum/heliosim/internal/metrics"
	"github.com/san-kum/heliosim/internal/server"
	"github.com/san-kum/heliosim/internal/sim"
	"github.com/san-kum/heliosim/internal/storage"
	"github.com/san-kum/heliosim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	solver     string
	outputCSV  string
	outputJSON string
	outputSVG  string
	noSave     bool
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heliosim",
		Short: "solar thermal loop simulator",
		Long:  "simulate a flat-plate collector charging a storage tank through a hysteresis-controlled circulation pump",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heliosim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (toml or yaml)")
	runCmd.Flags().StringVar(&solver, "solver", "rk4", "integration scheme (rk4, euler)")
	runCmd.Flags().StringVar(&outputCSV, "output-csv", "", "also write the trajectory CSV here")
	runCmd.Flags().StringVar(&outputJSON, "output-json", "", "also write the full JSON document here")
	runCmd.Flags().StringVar(&outputSVG, "output-svg", "", "also write an SVG plot of the tank temperature here")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip writing the run to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print the stored trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation and play it back in the terminal",
		RunE:  liveSimulation,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (toml or yaml)")
	liveCmd.Flags().StringVar(&solver, "solver", "rk4", "integration scheme (rk4, euler)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solvers across step sizes",
		RunE:  benchSolvers,
	}
	benchCmd.Flags().StringVar(&configFile, "config", "", "config file path (toml or yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve simulations over HTTP",
		RunE:  serveAPI,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, liveCmd, benchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// simulate loads the config, builds the weather source and runs the
// engine once. Shared by run, live and bench.
func simulate(solverName string) (*config.Config, *sim.Result, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	stepper, err := integrators.ForName(solverName)
	if err != nil {
		return nil, nil, err
	}

	source, err := cfg.BuildWeather()
	if err != nil {
		return nil, nil, err
	}

	result, err := sim.New(cfg.Bundle(), source, stepper).Run()
	if err != nil {
		return nil, nil, err
	}
	return cfg, result, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	log := logger.Get(logLevel)

	start := time.Now()
	cfg, result, err := simulate(solver)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	bundle := cfg.Bundle()
	summary := metrics.Summarize(result, bundle.Tank)

	log.Infow("simulation complete",
		"solver", solver,
		"steps", result.Len()-1,
		"elapsed", elapsed,
	)

	if outputCSV != "" {
		if err := export.CSVToFile(outputCSV, result); err != nil {
			return err
		}
	}
	if outputJSON != "" {
		if err := export.JSONToFile(outputJSON, solver, bundle.Simulation.DtS, bundle.Simulation.DurationS, result, summary); err != nil {
			return err
		}
	}
	if outputSVG != "" {
		if err := os.WriteFile(outputSVG, []byte(export.TankSVG(result, 960, 480)), 0o644); err != nil {
			return err
		}
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(solver, cfg.Weather.Kind, bundle.Simulation.DtS, bundle.Simulation.DurationS, summary, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", result.Len())
	fmt.Println("\nmetrics:")
	for name, val := range summary {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSOLVER\tWEATHER\tDT\tDURATION\tFINAL TANK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1fs\t%.0fs\t%.2f K\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Solver,
			run.WeatherKind,
			run.DtS,
			run.DurationS,
			run.Metrics["final_tank_k"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if result.Len() < 2 {
		return fmt.Errorf("not enough samples to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("solver: %s  weather: %s  samples: %d\n\n", meta.Solver, meta.WeatherKind, result.Len())

	series := []struct {
		caption string
		data    []float64
	}{
		{"tank temperature [K]", result.TankTemperatureK},
		{"ambient temperature [K]", result.AmbientTemperatureK},
		{"irradiance [W/m2]", result.IrradianceWM2},
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportRunCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, result)
}

func liveSimulation(cmd *cobra.Command, args []string) error {
	_, result, err := simulate(solver)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(result))
	_, err = p.Run()
	return err
}

func benchSolvers(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	source, err := cfg.BuildWeather()
	if err != nil {
		return err
	}

	solvers := []string{"euler", "rk4"}
	dts := []float64{1, 10, 60}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tDT\tSTEPS\tTIME\tSTEPS/SEC\tFINAL TANK")

	for _, name := range solvers {
		stepper, err := integrators.ForName(name)
		if err != nil {
			return err
		}
		for _, dt := range dts {
			bundle := cfg.Bundle()
			bundle.Simulation.DtS = dt

			start := time.Now()
			result, err := sim.New(bundle, source, stepper).Run()
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := result.Len() - 1
			fmt.Fprintf(w, "%s\t%.1fs\t%d\t%v\t%.0f\t%.3f K\n",
				name, dt, steps, elapsed,
				float64(steps)/elapsed.Seconds(),
				result.TankTemperatureK[result.Len()-1],
			)
		}
	}
	return w.Flush()
}

func serveAPI(cmd *cobra.Command, args []string) error {
	log := logger.Get(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := server.NewHandler(log)
	log.Infow("serving", "addr", addr)

	srv := &server.Server{}
	if err := srv.Run(ctx, addr, handler.InitRoutes()); err != nil {
		return err
	}
	log.Infow("shut down")
	return nil
}
