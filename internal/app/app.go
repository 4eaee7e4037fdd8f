// Package app implements the spread command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/spread/internal/cache"
	"github.com/llehouerou/spread/internal/config"
	"github.com/llehouerou/spread/internal/errmsg"
	"github.com/llehouerou/spread/internal/library"
	"github.com/llehouerou/spread/internal/playlist"
	"github.com/llehouerou/spread/internal/shuffle"
)

const appName = "spread"

// errOutputFailed reports that at least one output could not be written.
// The individual failures have already been logged.
var errOutputFailed = errors.New("some outputs could not be written")

type options struct {
	lookahead  int
	ratingStep int
	seed       uint64
	workers    int
	noCache    bool
	allFiles   bool
	configPath string
	verbose    bool
	quiet      bool
}

// Execute runs the command with the process arguments and returns the exit
// code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errOutputFailed) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

// NewCommand returns the root command.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   appName + " [flags] [INPUTS...] -- [OUTPUTS...]",
		Short: "Shuffle playlists so the same artist rarely plays twice in a row.",
		Long: `Reads music files from INPUTS (directories or playlist files, the
current directory if none are given) and writes a shuffled playlist to each
of OUTPUTS, or to stdout if none are given.

Tracks are grouped by artist, read from the file tags or guessed from the
path (Artist/Album/track). Artists are spread out over the playlist, and so
are the tracks of each artist. Rated tracks get extra plays, one per
--rating-step of rating (0-255).`,
		Example: `  spread ~/Music -- shuffled.m3u
  spread favorites.m3u ~/Music/Jazz -- a.m3u b.m3u
  spread --seed 42 --`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash < 0 {
				return cmd.Help()
			}
			return runShuffle(cmd, opts, args[:dash], args[dash:], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.IntVar(&opts.lookahead, "lookahead", config.DefaultMaxLookahead,
		"How far ahead to look for a different artist when two would play in a row")
	flags.IntVar(&opts.ratingStep, "rating-step", config.DefaultRatingStep,
		"Rating units per extra play, 0 disables rating boosts")
	flags.Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 picks one")
	flags.IntVar(&opts.workers, "workers", config.DefaultWorkers, "Number of concurrent tag readers")
	flags.BoolVar(&opts.noCache, "no-cache", false, "Do not use the tag cache")
	flags.BoolVar(&opts.allFiles, "all-files", false, "Include non-music files found in directories")
	flags.StringVar(&opts.configPath, "config", "", "Extra config file to load")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Log nothing")

	return cmd
}

// settings are the effective values after config files and flags.
type settings struct {
	shuffle  config.ShuffleConfig
	workers  int
	allFiles bool
	cache    bool
	cacheAt  string
}

func loadSettings(cmd *cobra.Command, opts options) (settings, error) {
	var extra []string
	if opts.configPath != "" {
		extra = append(extra, opts.configPath)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return settings{}, errors.New(errmsg.Format(errmsg.OpLoadConfig, err))
	}

	flags := cmd.Flags()
	if flags.Changed("lookahead") {
		cfg.MaxLookahead = opts.lookahead
	}
	if flags.Changed("rating-step") {
		cfg.RatingStep = &opts.ratingStep
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("all-files") {
		cfg.AllFiles = opts.allFiles
	}
	if opts.noCache {
		off := false
		cfg.Cache = &off
	}

	return settings{
		shuffle:  cfg.GetShuffleConfig(),
		workers:  cfg.WorkerCount(),
		allFiles: cfg.AllFiles,
		cache:    cfg.CacheEnabled(),
		cacheAt:  cfg.CachePath,
	}, nil
}

func runShuffle(cmd *cobra.Command, opts options, inputs, outputs []string, stdout, stderr io.Writer) error {
	ctx := cmd.Context()
	log := newLogger(stderr, opts.verbose, opts.quiet)
	defer log.Sync() //nolint:errcheck // nothing to do if stderr cannot be flushed

	s, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	libOpts := library.Options{
		RatingStep: s.shuffle.RatingStep,
		Workers:    s.workers,
		AllFiles:   s.allFiles,
		Logger:     log,
	}
	if s.cache {
		if c := openCache(s.cacheAt, log); c != nil {
			defer c.Close()
			libOpts.Cache = c
		}
	}

	lib := library.New(libOpts)
	if len(inputs) == 0 {
		inputs = []string{"."}
	}
	for _, in := range inputs {
		if err := lib.AddPath(ctx, in); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, os.ErrNotExist) {
				log.Warn("input path doesn't exist", zap.String("path", in))
				continue
			}
			log.Warn(errmsg.FormatWith(errmsg.OpReadInput, in, err))
		}
	}

	nested, err := lib.Build()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpBuild, err))
	}

	stats := lib.Stats()
	log.Info("library ready",
		zap.Int("tracks", stats.Tracks),
		zap.Int("artists", stats.Artists),
		zap.Int("slots", stats.Slots),
	)

	r := newRand(opts.seed)
	if len(outputs) == 0 {
		nested.Shuffle(r, s.shuffle.MaxLookahead)
		if err := playlist.Write(stdout, nested.All(), ""); err != nil {
			return errors.New(errmsg.Format(errmsg.OpWriteStdout, err))
		}
		printSummary(stderr, opts, stats, 0)
		return nil
	}

	written := writeOutputs(nested, r, s.shuffle.MaxLookahead, outputs, log)
	printSummary(stderr, opts, stats, written)
	if written < len(outputs) {
		return errOutputFailed
	}
	return nil
}

// writeOutputs gives every output its own shuffle and returns how many
// were written.
func writeOutputs(nested *shuffle.Nested[string], r *rand.Rand, lookahead int, outputs []string, log *zap.Logger) int {
	written := 0
	for _, out := range outputs {
		nested.Shuffle(r, lookahead)
		if err := playlist.WriteFile(out, nested.All()); err != nil {
			log.Error(errmsg.FormatWith(errmsg.OpWritePlaylist, out, err))
			continue
		}
		log.Debug("wrote playlist", zap.String("path", out), zap.Int("entries", nested.Len()))
		written++
	}
	return written
}

func openCache(path string, log *zap.Logger) *cache.Cache {
	if path == "" {
		p, err := cache.DefaultPath()
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpOpenCache, err))
			return nil
		}
		path = p
	}
	c, err := cache.Open(path)
	if err != nil {
		log.Warn(errmsg.FormatWith(errmsg.OpOpenCache, path, err))
		return nil
	}
	log.Debug("using tag cache", zap.String("path", path))
	return c
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func printSummary(w io.Writer, opts options, stats library.Stats, outputs int) {
	if opts.quiet {
		return
	}
	msg := fmt.Sprintf("%s tracks by %s artists, %s entries per playlist",
		humanize.Comma(int64(stats.Tracks)),
		humanize.Comma(int64(stats.Artists)),
		humanize.Comma(int64(stats.Slots)),
	)
	if outputs > 0 {
		msg += fmt.Sprintf(", %s playlists written", humanize.Comma(int64(outputs)))
	}
	fmt.Fprintln(w, msg)
}
