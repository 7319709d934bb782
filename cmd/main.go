package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	service "github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/config"
	"github.com/okian/gridiron/internal/domain/lineup"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/testleague"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

var (
	errUsage          = errors.New("usage")
	errUnknownCommand = errors.New("unknown command")
	errNoSnapshot     = errors.New("no snapshot: pass --snapshot, set snapshot in config, or use --demo")
	errTradeSides     = errors.New("trade needs at least one --in or --out player")
)

const usage = `gridiron analyses a fantasy football snapshot.

Usage:
  gridiron [flags] <command>

Commands:
  blend       blended projections for the week
  vorp        replacement baselines and value over replacement
  lineup      optimal starting lineup
  whatif      lineup with projection overrides (--overrides)
  waivers     free agent pickups with FAAB bids
  trade       evaluate receiving --in for giving --out
  draft       best available per position (--round, --pick)
  season      lineups for several weeks (--weeks)
  duplicates  player records that describe the same athlete

Flags:
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		os.Stderr.WriteString("failed to load .env: " + err.Error() + "\n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

type flags struct {
	configPath string
	snapshot   string
	demo       bool
	seed       uint64

	week      int
	objective string
	lambda    float64
	stack     bool

	overrides   string
	in, out     []string
	round, pick int
	weeks       []int
	workers     int

	metricsTextfile string
}

func newFlagSet(f *flags, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("gridiron", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = io.WriteString(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&f.configPath, "config", "", "YAML config file (overrides "+config.EnvPrefix+"CONFIG)")
	fs.StringVar(&f.snapshot, "snapshot", "", "snapshot file in YAML or JSON")
	fs.BoolVar(&f.demo, "demo", false, "analyse a generated league instead of a snapshot file")
	fs.Uint64Var(&f.seed, "seed", 42, "seed for --demo")

	fs.IntVar(&f.week, "week", 0, "target week (default: snapshot week)")
	fs.StringVar(&f.objective, "objective", "", "lineup objective: expected or risk")
	fs.Float64Var(&f.lambda, "lambda", 0, "risk aversion for the risk objective")
	fs.BoolVar(&f.stack, "stack", false, "reward same-team QB/WR pairs")

	fs.StringVar(&f.overrides, "overrides", "", "what-if overrides file: player id -> {expected, stdev}")
	fs.StringSliceVar(&f.in, "in", nil, "player ids received in a trade")
	fs.StringSliceVar(&f.out, "out", nil, "player ids given up in a trade")
	fs.IntVar(&f.round, "round", 1, "draft round")
	fs.IntVar(&f.pick, "pick", 1, "draft pick within the round")
	fs.IntSliceVar(&f.weeks, "weeks", nil, "weeks for the season command")
	fs.IntVar(&f.workers, "workers", 0, "parallel solves for the season command (default: CPUs)")

	fs.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics here after the run")
	return fs
}

// run executes one command and writes its JSON result to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: expected exactly one command", errUsage)
	}
	cmd := fs.Arg(0)

	if f.configPath != "" {
		if err := os.Setenv(config.EnvPrefix+"CONFIG", f.configPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, fs, f); err != nil {
		return err
	}

	if err := logger.Init(
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(cfg.LogLevel),
		logger.WithWriter(stderr),
	); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("cli")

	snap, err := loadSnapshot(f, cfg)
	if err != nil {
		return err
	}

	svc := service.New(service.WithConfig(cfg), service.WithLogger(logger.Named("service")))
	p := svc.DefaultParams(svc.Week(snap))
	if fs.Changed("week") && f.week > 0 {
		p.Week = f.week
	}

	result, err := dispatch(ctx, cmd, svc, snap, p, f)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(metrics.GetRegistry(), cfg.MetricsTextfile); err != nil {
			log.Error(ctx, "metrics textfile not written", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
			return err
		}
	}
	log.Debug(ctx, "command finished", logger.String("command", cmd))
	return nil
}

func dispatch(ctx context.Context, cmd string, svc *service.Service, snap *model.Snapshot, p lineup.Params, f flags) (any, error) {
	switch cmd {
	case "blend":
		return svc.Blend(ctx, snap), nil
	case "vorp":
		return vorpReport{
			Baselines:  svc.Baselines(ctx, snap),
			VORP:       svc.VORP(ctx, snap),
			RosterVORP: svc.RosterVORP(ctx, snap),
		}, nil
	case "lineup":
		return svc.OptimizeLineup(ctx, snap, p), nil
	case "whatif":
		overrides, err := loadOverrides(f.overrides)
		if err != nil {
			return nil, err
		}
		return svc.WhatIf(ctx, snap, p, overrides), nil
	case "waivers":
		return svc.Waivers(ctx, snap), nil
	case "trade":
		if len(f.in) == 0 && len(f.out) == 0 {
			return nil, errTradeSides
		}
		return svc.EvaluateTrade(ctx, snap, f.in, f.out), nil
	case "draft":
		return svc.DraftBoard(ctx, snap, f.round, f.pick), nil
	case "season":
		weeks := f.weeks
		if len(weeks) == 0 {
			weeks = []int{p.Week}
		}
		return svc.OptimizeWeeks(ctx, snap, weeks, f.workers)
	case "duplicates":
		return svc.Duplicates(ctx, snap), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
}

type vorpReport struct {
	Baselines  map[model.Position]float64 `json:"baselines"`
	VORP       map[string]float64         `json:"vorp"`
	RosterVORP float64                    `json:"roster_vorp"`
}

// applyFlags layers explicitly set flags over the loaded config and
// validates the result again.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet, f flags) error {
	if fs.Changed("objective") {
		cfg.Objective = f.objective
	}
	if fs.Changed("lambda") {
		cfg.RiskLambda = f.lambda
	}
	if fs.Changed("stack") {
		cfg.StackBonus = f.stack
	}
	if f.metricsTextfile != "" {
		cfg.MetricsTextfile = f.metricsTextfile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	return nil
}

func loadSnapshot(f flags, cfg *config.Config) (*model.Snapshot, error) {
	if f.demo {
		return testleague.Generate(testleague.WithSeed(f.seed)), nil
	}
	path := f.snapshot
	if path == "" {
		path = cfg.Snapshot
	}
	if path == "" {
		return nil, errNoSnapshot
	}
	var snap model.Snapshot
	if err := readYAML(path, &snap); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return &snap, nil
}

func loadOverrides(path string) (map[string]service.Override, error) {
	if path == "" {
		return nil, nil
	}
	var out map[string]service.Override
	if err := readYAML(path, &out); err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	return out, nil
}

// readYAML decodes path into v. JSON files decode too.
func readYAML(path string, v any) error {
	b, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, v)
}
