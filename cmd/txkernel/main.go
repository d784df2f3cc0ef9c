// Command txkernel runs a single transaction fixture (public inputs plus
// prologue advice data, as JSON) through the prologue, a no-op transaction
// body, and the epilogue, printing the resulting output triple or the
// first fatal error encountered.
//
// Usage:
//
//	txkernel run --fixture tx.json
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rollupkit/txkernel/kernel"
	"github.com/rollupkit/txkernel/log"
	"github.com/rollupkit/txkernel/mcrypto"
)

// version is overridable with ldflags, matching the teacher's convention:
//
//	go build -ldflags "-X main.version=v0.2.0"
var version = "v0.1.0-dev"

func main() {
	app := &cli.App{
		Name:    "txkernel",
		Usage:   "run a transaction kernel fixture through prologue/body/epilogue",
		Version: version,
		Commands: []*cli.Command{
			runCmd,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var fixtureFlag = &cli.StringFlag{
	Name:     "fixture",
	Usage:    "path to a transaction fixture JSON file",
	Required: true,
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "enable debug-level logging",
}

var runCmd = &cli.Command{
	Name:   "run",
	Usage:  "execute one transaction fixture",
	Flags:  []cli.Flag{fixtureFlag, verboseFlag},
	Action: runFixture,
}

// txFixtureFile is the on-disk JSON shape a fixture file takes: the
// transaction's public stack inputs plus every piece of advice data the
// prologue consumes (spec.md §6's "Inputs (public)"/"Inputs (private)"
// split, given a JSON envelope).
type txFixtureFile struct {
	Public  kernel.PublicInputs    `json:"public"`
	Witness kernel.PrologueWitness `json:"witness"`
}

func runFixture(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetDefault(log.New(slog.LevelDebug))
	}

	raw, err := os.ReadFile(c.String("fixture"))
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}

	var fixture txFixtureFile
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	cfg := kernel.DefaultConfig()
	prims := mcrypto.NewReference()
	for _, nw := range fixture.Witness.InputNotes {
		prims.MMRAppend(mcrypto.Hash(nw.SubHash, nw.NoteRoot)) // seed the chain MMR with the note's creation-block hash
	}

	prologue := kernel.NewPrologue(cfg, prims, nil)
	state, err := prologue.Run(fixture.Public, fixture.Witness)
	if err != nil {
		return fmt.Errorf("prologue: %w", err)
	}

	out, err := kernel.NewEpilogue().Run(state)
	if err != nil {
		return fmt.Errorf("epilogue: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
