// Entry point

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"time"
)

func main() {
	var (
		port         = flag.Uint("p", 0, "port to listen on")
		seed         = flag.Uint("s", 0, "initial RNG seed (default: current time)")
		turningSpeed = flag.Uint("t", 0, "turning speed in degrees per tick")
		roundsPerSec = flag.Uint("v", 0, "ticks per second")
		width        = flag.Uint("w", 0, "board width")
		height       = flag.Uint("h", 0, "board height")
		confFile     = flag.String("conf", "", "optional TOML configuration file")
		debugFlag    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(), "Too many arguments passed to %s.\nUsage:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *debugFlag {
		debug.SetOutput(os.Stderr)
	} else {
		debug.SetOutput(io.Discard)
	}

	conf := defaultConf
	if *confFile != "" {
		fileConf, err := readConfFile(*confFile)
		if err != nil {
			log.Fatalf("read config file: %v", err)
		}
		conf = fileConf
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			conf.Port = *port
		case "t":
			conf.TurningSpeed = *turningSpeed
		case "v":
			conf.RoundsPerSec = *roundsPerSec
		case "w":
			conf.Width = *width
		case "h":
			conf.Height = *height
		}
	})

	if conf.Width > maxDim || conf.Height > maxDim {
		log.Fatalf("board dimensions must not exceed %d (got %dx%d)", maxDim, conf.Width, conf.Height)
	}

	switch {
	case isFlagSet("s"):
		conf.Seed = uint32(*seed)
	case conf.Seed == 0:
		conf.Seed = uint32(time.Now().Unix())
	}

	debug.Printf("starting with config: %+v", conf)

	addr := &net.UDPAddr{IP: net.IPv6unspecified, Port: int(conf.Port)}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer conn.Close()

	debug.Printf("listening on %s", conn.LocalAddr())

	srv := NewServer(conf, conn)
	srv.Run()
}

// isFlagSet reports whether the named flag was explicitly passed on the
// command line, distinguishing "-s 0" from "not given" (§6 precedence:
// flags override the config file, the config file overrides built-in
// defaults).
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
