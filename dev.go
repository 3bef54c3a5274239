package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/eight/vip"
)

// devMode runs romFile and reloads it, along with its label file, whenever
// either changes on disk. If debug is set the debugger takes over the
// terminal.
func devMode(cfg vip.Config, debug bool, romFile string) error {
	romFile = filepath.Clean(romFile)
	symFile := romFile + ".sym"

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		return err
	}

	var (
		dbg   *debugger
		state vip.StateFunc
	)
	if debug {
		dbg = newDebugger()
		state = dbg.StateFunc
	}
	cfg.Dev = true
	runner := vip.NewRunner(cfg, state)
	if dbg != nil {
		dbg.run = runner
		log.SetPrefix("")
		log.SetOutput(dbg.log)
		go func() {
			if err := dbg.Run(); err != nil {
				log.Fatalf("debug: %v", err)
			}
			log.SetOutput(os.Stderr)
			log.SetPrefix("eight: ")
			runner.Debug("exit", 0)
		}()
		defer dbg.app.Stop()
	}

	romCh := make(chan []byte)
	go func() {
		started := false
		load := time.After(1 * time.Millisecond)
		for {
			select {
			case <-load:
				rom, err := os.ReadFile(romFile)
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				if dbg != nil {
					syms, err := parseSymbols(symFile)
					if err != nil && !errors.Is(err, fs.ErrNotExist) {
						log.Printf("dev: reading symbols: %v", err)
					}
					dbg.setSymbols(syms)
				}
				if !started {
					log.Printf("dev: start %s", filepath.Base(romFile))
					romCh <- rom
					started = true
				} else {
					log.Printf("dev: reset")
					if err := runner.Swap(rom); err != nil {
						log.Printf("dev: %v", err)
					}
				}
			case ev := <-watcher.Event:
				if (ev.Name == romFile || ev.Name == symFile) && !ev.IsAttrib() {
					load = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			}
		}
	}()
	return runner.Run(<-romCh)
}
