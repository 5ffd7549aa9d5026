package main

import (
	"io"
	"log"
)

// debug mirrors the teacher's server/go-kgp/log.go: discarded by default,
// switched to stderr when -debug is passed.
var debug = log.New(io.Discard, "[debug] ", log.Ltime|log.Lmicroseconds)
