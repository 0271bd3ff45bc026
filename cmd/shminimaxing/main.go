//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package main

import (
	"flag"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/0xleft/shminimaxing/internal/config"
	"github.com/0xleft/shminimaxing/internal/logging"
	"github.com/0xleft/shminimaxing/internal/position"
	"github.com/0xleft/shminimaxing/internal/util"
	"github.com/0xleft/shminimaxing/pkg/quarto"
)

var out = message.NewPrinter(language.German)

// buildVersion is overwritten at build time via -ldflags; it stays
// "dev" for a plain go build.
var buildVersion = "dev"

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	movetime := flag.Int("movetime", 1000, "milliseconds handed to ComputeMove as the remaining time budget")
	selfplay := flag.Bool("selfplay", false, "play one full game of the engine against itself and print the result")
	bench := flag.Int("bench", 0, "run ComputeMove from the empty board this many times and report timing")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	config.ConfFile = *configFile
	config.Setup()

	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	logging.SetLevel(*logLvl)

	switch {
	case *selfplay:
		runSelfPlay(time.Duration(*movetime) * time.Millisecond)
	case *bench > 0:
		runBench(*bench, time.Duration(*movetime)*time.Millisecond)
	default:
		runSelfPlay(time.Duration(*movetime) * time.Millisecond)
	}

	if err := quarto.Save(); err != nil {
		out.Printf("could not persist transposition table: %v\n", err)
	}
}

func printVersionInfo() {
	out.Printf("shminimaxing %s\n", buildVersion)
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}

// runSelfPlay drives a complete game by repeatedly calling the host
// facade for both sides, alternating who selects and who places, and
// prints the final board and outcome.
func runSelfPlay(budget time.Duration) {
	p := position.NewPosition()
	rng := rand.New(rand.NewSource(1))

	// the very first turn has no piece handed over yet: pick one at
	// random to hand to the opponent, the same way a human opener would.
	firstPiece := p.AvailablePieces()[rng.Intn(len(p.AvailablePieces()))]
	p.DoSelect(firstPiece)

	plies := 0
	for !p.IsGameOver() && plies < 32 {
		code := quarto.ComputeMove(p.B, p.SelectionState(), p.SelectedPiece(), int(budget/time.Millisecond))
		square := int(code >> 4)
		piece := int(code & 0xF)

		p.DoMove(square)
		plies++
		if p.IsGameOver() {
			break
		}
		p.DoSelect(piece)
		plies++
	}

	out.Println(p.String())
	switch {
	case p.IsQuarto():
		out.Printf("quarto after %d plies\n", plies)
	case p.IsGameOver():
		out.Println("draw, board full")
	default:
		out.Println("stopped before game end (ply limit)")
	}
}

// runBench calls ComputeMove n times against the empty board with a
// piece already handed to the mover - the MCTS branch every real
// midgame call goes through - and reports timing and memory counters:
// calls/sec via util.Nps and a memory/GC snapshot via util.GcWithStats.
// The run is wrapped in a CPU profile written to the working directory.
func runBench(n int, budget time.Duration) {
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	defer util.TimeTrack(time.Now(), "bench")

	var board [5]uint16
	start := time.Now()
	for i := 0; i < n; i++ {
		quarto.ComputeMove(board, 0xFFFE, 0, int(budget/time.Millisecond))
	}
	elapsed := time.Since(start)

	out.Printf("%d calls in %s, %s/call, %d calls/sec\n",
		n, elapsed, elapsed/time.Duration(n), util.Nps(uint64(n), elapsed))
	out.Println(util.GcWithStats())
}
