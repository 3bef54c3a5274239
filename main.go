// Command eight executes CHIP-8 programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/eight/vip"
)

func main() {
	log.SetPrefix("eight: ")
	log.SetFlags(0)

	var (
		cliFlag   = flag.Bool("cli", false, "draw in the terminal instead of a window")
		devFlag   = flag.Bool("dev", false, "enable developer mode (reload the program when it changes)")
		debugFlag = flag.Bool("debug", false, "enable debugger (implies -dev)")
		rateFlag  = flag.Int("rate", vip.DefaultRate, "execute `n` instructions per second")
		scaleFlag = flag.Int("scale", 10, "draw each display pixel as an `n`x`n` square")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] [-rate n] [-scale n] <program.ch8>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-cli] <-dev | -debug> <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 || *rateFlag <= 0 || *scaleFlag <= 0 {
		flag.Usage()
	}

	cfg := vip.Config{
		Display: vip.GUI,
		Rate:    *rateFlag,
		Scale:   *scaleFlag,
	}
	if *cliFlag {
		cfg.Display = vip.Terminal
		if *debugFlag {
			// The debugger owns the terminal.
			cfg.Display = vip.Headless
		}
	}

	if *devFlag || *debugFlag {
		if err := devMode(cfg, *debugFlag, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(flag.Arg(0), cfg)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(romFile string, cfg vip.Config) error {
	rom, err := os.ReadFile(romFile)
	if err != nil {
		return err
	}
	return vip.NewRunner(cfg, nil).Run(rom)
}
