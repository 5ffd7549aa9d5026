// Entry point

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"screenworms/event"
)

func main() {
	var (
		name       = flag.String("n", "", "player name")
		serverPort = flag.Uint("p", 2021, "server UDP port")
		guiHost    = flag.String("i", "localhost", "front-end TCP host")
		guiPort    = flag.Uint("r", 20210, "front-end TCP port")
		debugFlag  = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <server>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	server := flag.Arg(0)

	if !event.ValidName(*name) {
		log.Fatalf("invalid player name %q: must be at most 20 bytes, each in [33,126]", *name)
	}

	if *debugFlag {
		debug.SetOutput(os.Stderr)
	} else {
		debug.SetOutput(io.Discard)
	}

	serverAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", server, *serverPort))
	if err != nil {
		log.Fatalf("resolve server address: %v", err)
	}
	conn, err := net.DialUDP("udp", nil, serverAddr)
	if err != nil {
		log.Fatalf("dial server: %v", err)
	}
	defer conn.Close()

	frontEndAddr := fmt.Sprintf("%s:%d", *guiHost, *guiPort)
	frontEnd, err := net.Dial("tcp", frontEndAddr)
	if err != nil {
		log.Fatalf("dial front-end at %s: %v", frontEndAddr, err)
	}
	defer frontEnd.Close()

	debug.Printf("connected to server %s and front-end %s", serverAddr, frontEndAddr)

	cli := NewClient(conn, frontEnd, *name)
	cli.Run()
}
