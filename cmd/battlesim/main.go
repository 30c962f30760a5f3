package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vertyco/botbattle/internal/config"
	"github.com/vertyco/botbattle/internal/mask"
	"github.com/vertyco/botbattle/internal/sim"
	"github.com/vertyco/botbattle/internal/util"
)

func main() {
	var cfgDir, out string
	var seed int64
	var n int
	var withFrames bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir (battle.yaml, roster.yaml)")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 12345, "rng seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.BoolVar(&withFrames, "frames", true, "include frame snapshots when n==1")
	flag.Parse()

	svc := loadService(cfgDir)
	logger := newLogger(svc.LogLevel)

	battle, err := config.LoadBattle(cfgDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("battle config")
	}
	roster, err := config.LoadRoster(cfgDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("roster")
	}

	oracle := mask.NewOracle()
	if count, err := oracle.LoadDir(svc.PlatingDir); err != nil {
		logger.Fatal().Err(err).Msg("plating bitmaps")
	} else if count == 0 {
		logger.Warn().Str("dir", svc.PlatingDir).
			Msg("no plating bitmaps, using circular hit tests")
	}

	ctx := context.Background()

	if n <= 1 {
		s, err := sim.New(battle, roster, oracle, seed, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("simulation setup")
		}
		var res *sim.BattleResult
		if withFrames {
			res, err = s.Run(ctx)
		} else {
			res, err = s.RunSummary(ctx)
		}
		if err != nil {
			logger.Fatal().Err(err).Msg("simulation run")
		}
		if err := writeJSON(out, res); err != nil {
			logger.Fatal().Err(err).Msg("write result")
		}
		fmt.Printf("Battle finished. Winner=%d, T=%.2fs, frames=%d -> %s\n",
			res.WinnerTeam, res.Duration, res.TotalFrames, out)
		return
	}

	summary := runBatch(ctx, n, seed, battle, roster, oracle, logger)
	if err := writeJSON(out, summary); err != nil {
		logger.Fatal().Err(err).Msg("write summary")
	}
	fmt.Printf("Batch %d done -> %s\n", n, out)
}

type batchSummary struct {
	Runs          int                `json:"runs"`
	Team1WinRate  float64            `json:"team1_win_rate"`
	Team2WinRate  float64            `json:"team2_win_rate"`
	DrawRate      float64            `json:"draw_rate"`
	AvgDuration   float64            `json:"avg_duration"`
	DamageByAgent map[string]float64 `json:"damage_by_agent"`
	KillsByAgent  map[string]int     `json:"kills_by_agent"`
}

func runBatch(ctx context.Context, n int, seed int64, battle config.BattleConfig, roster *config.RosterConfig, oracle *mask.Oracle, logger zerolog.Logger) batchSummary {
	type tally struct {
		wins  map[int]int
		sumT  float64
		dmg   map[string]float64
		kills map[string]int
	}
	st := tally{wins: map[int]int{}, dmg: map[string]float64{}, kills: map[string]int{}}
	var mu sync.Mutex
	var wg sync.WaitGroup

	const workers = 8
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				s, err := sim.New(battle, roster, oracle, util.DeriveSeed(seed, workerID, i), logger)
				if err != nil {
					logger.Error().Err(err).Msg("batch run setup")
					continue
				}
				res, err := s.RunSummary(ctx)
				if err != nil {
					logger.Error().Err(err).Msg("batch run")
					continue
				}
				mu.Lock()
				st.wins[res.WinnerTeam]++
				st.sumT += res.Duration
				for id, as := range res.PerAgent {
					st.dmg[id] += as.DamageDealt
					st.kills[id] += as.Kills
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return batchSummary{
		Runs:          n,
		Team1WinRate:  float64(st.wins[1]) / float64(n),
		Team2WinRate:  float64(st.wins[2]) / float64(n),
		DrawRate:      float64(st.wins[0]) / float64(n),
		AvgDuration:   st.sumT / float64(n),
		DamageByAgent: st.dmg,
		KillsByAgent:  st.kills,
	}
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).With().Timestamp().Logger()
}
