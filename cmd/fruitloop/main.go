// cmd/fruitloop/main.go
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"fruitloop/internal/config"
	"fruitloop/internal/game"
	"fruitloop/internal/models"
)

// logFrontend narrates engine events through logrus.
type logFrontend struct {
	log *logrus.Entry
}

func (f logFrontend) Announce(event string, fields map[string]any) {
	f.log.WithFields(logrus.Fields(fields)).Info(event)
}

func (f logFrontend) PromptChoice(req game.ChoiceRequest) {
	f.log.WithFields(logrus.Fields{
		"player":  req.Player,
		"kind":    req.Kind,
		"options": req.Options,
	}).Info("choice requested")
}

func (f logFrontend) ReflectState(game.StateView) {}

func main() {
	players := flag.Int("players", 4, "number of AI players")
	seed := flag.Int64("seed", 0, "rng seed, 0 picks one from the clock")
	verbose := flag.Bool("verbose", false, "debug logging")
	snapshotPath := flag.String("snapshot", "", "write the final game snapshot to this file")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("app", "fruitloop")

	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if *players < 2 {
		log.Fatal("need at least two players")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	log.WithField("seed", *seed).Info("starting simulation")

	roster := make([]*models.Player, 0, *players)
	for i := 0; i < *players; i++ {
		roster = append(roster, &models.Player{
			ID:   uuid.New(),
			Name: fmt.Sprintf("bot-%d", i+1),
			IsAI: true,
		})
	}

	eng, err := game.NewEngine(cfg, roster, game.Options{
		RNG:         rng,
		Log:         log,
		Frontend:    logFrontend{log: log},
		Synchronous: true,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to build engine")
	}

	// Synchronous mode plays the whole all-AI game inside Start.
	if err := eng.Start(); err != nil {
		log.WithError(err).Fatal("failed to start game")
	}
	winner := eng.Winner()
	if winner == nil {
		log.Fatal("simulation ended without a winner")
	}
	fmt.Printf("winner: %s with %d points after %d rounds\n",
		winner.Name, winner.TotalScore, eng.Round())

	if *snapshotPath != "" {
		data, err := eng.MarshalSnapshot()
		if err != nil {
			log.WithError(err).Fatal("failed to marshal snapshot")
		}
		if err := os.WriteFile(*snapshotPath, data, 0o644); err != nil {
			log.WithError(err).Fatal("failed to write snapshot")
		}
		log.WithField("path", *snapshotPath).Info("snapshot written")
	}
}
