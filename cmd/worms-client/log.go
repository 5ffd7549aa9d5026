package main

import (
	"io"
	"log"
)

// debug mirrors the server binary's discard-by-default logger.
var debug = log.New(io.Discard, "[debug] ", log.Ltime|log.Lmicroseconds)
