// This file is part of caio.
//
// caio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// caio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with caio.  If not, see <https://www.gnu.org/licenses/>.

// Command caio runs the emulation core headlessly: it loads the three
// ROM images, optionally attaches a cartridge or autoruns a PRG, and
// drives the machine's Clock until interrupted. It has no display or
// input surface of its own - those belong to a UI front end - but it
// is enough to exercise every wired component, and to capture SID
// output to a .wav file for inspection.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/cdio/caio/cartridge"
	"github.com/cdio/caio/hardware/audio"
	"github.com/cdio/caio/hardware/machine"
	"github.com/cdio/caio/logger"
	"github.com/cdio/caio/prg"
)

func main() {
	var (
		basicPath   = flag.String("basic", "", "path to the BASIC ROM image")
		kernalPath  = flag.String("kernal", "", "path to the KERNAL ROM image")
		chargenPath = flag.String("chargen", "", "path to the character generator ROM image")
		cartPath    = flag.String("cart", "", "path to a CRT cartridge image to attach")
		prgPath     = flag.String("prg", "", "path to a PRG file to load and autorun")
		audioCap    = flag.String("audio-capture", "", "path to a .wav file to record SID output to")
		ntsc        = flag.Bool("ntsc", false, "use the NTSC system clock frequency instead of PAL")
		verbose     = flag.Bool("v", false, "enable logging")
	)
	flag.Parse()

	if err := run(*basicPath, *kernalPath, *chargenPath, *cartPath, *prgPath, *audioCap, *ntsc, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "caio:", err)
		os.Exit(1)
	}
}

func run(basicPath, kernalPath, chargenPath, cartPath, prgPath, audioCap string, ntsc, verbose bool) error {
	if basicPath == "" || kernalPath == "" || chargenPath == "" {
		return fmt.Errorf("-basic, -kernal and -chargen are all required")
	}

	basic, err := os.ReadFile(basicPath)
	if err != nil {
		return err
	}
	kernal, err := os.ReadFile(kernalPath)
	if err != nil {
		return err
	}
	chargen, err := os.ReadFile(chargenPath)
	if err != nil {
		return err
	}

	var sink audio.Sink
	if audioCap != "" {
		wavSink, err := audio.NewWavSink(audioCap)
		if err != nil {
			return err
		}
		defer wavSink.Close()
		sink = wavSink
	} else {
		queue := audio.NewBufferQueue(4)
		defer queue.Stop()
		sink = queue
	}

	clkf := uint64(machine.PALClock)
	if ntsc {
		clkf = machine.NTSCClock
	}

	c64, err := machine.New("caio", clkf, machine.ROMs{Basic: basic, Kernal: kernal, Chargen: chargen}, sink)
	if err != nil {
		return err
	}

	if cartPath != "" {
		f, err := os.Open(cartPath)
		if err != nil {
			return err
		}
		crt, err := cartridge.Load(f)
		f.Close()
		if err != nil {
			return err
		}
		if len(crt.Chips) > 0 {
			ch := crt.Chips[0]
			switch {
			case len(ch.Data) > 0x2000:
				c64.AttachCartridge16K(ch.Data[:0x2000], ch.Data[0x2000:])
			case crt.ROMHi() && len(crt.Chips) > 1:
				c64.AttachCartridge16K(ch.Data, crt.Chips[1].Data)
			default:
				c64.AttachCartridge(ch.Data)
			}
		}
	}

	c64.Reset()

	if prgPath != "" {
		f, err := os.Open(prgPath)
		if err != nil {
			return err
		}
		addr, data, err := prg.Load(f, 0)
		f.Close()
		if err != nil {
			return err
		}
		as := c64.AddressSpace()
		for i, b := range data {
			as.Write(addr+uint16(i), b)
		}
		c64.CPU.SetBreakpoint(prg.ReadyTrap, func(uint16) {
			prg.InjectRun(as)
			c64.CPU.SetBreakpoint(prg.ReadyTrap, nil)
		})
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		c64.Clock.Stop()
	}()

	c64.Clock.Run()

	if verbose {
		logger.Central.Write(os.Stderr)
	}
	return nil
}
