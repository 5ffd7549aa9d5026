// Server configuration

package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

const maxDim = 2000

// Conf holds the server's tunables (§6). Unlike the teacher's process-wide
// *Conf, this is a plain value built once in main and passed explicitly
// to the pieces that need it (Design Notes: "no process-wide
// singletons").
type Conf struct {
	Port         uint   `toml:"port"`
	Seed         uint32 `toml:"seed"`
	TurningSpeed uint   `toml:"turning_speed"`
	RoundsPerSec uint   `toml:"rounds_per_sec"`
	Width        uint   `toml:"width"`
	Height       uint   `toml:"height"`
}

var defaultConf = Conf{
	Port:         2021,
	TurningSpeed: 6,
	RoundsPerSec: 50,
	Width:        640,
	Height:       480,
}

// tomlOverlay is the shape of an optional `-conf` file: the same fields,
// nested under a [server] table, the way the teacher's server.toml nests
// settings under [game], [web], [tcp].
type tomlOverlay struct {
	Server Conf `toml:"server"`
}

// readConfFile decodes a TOML config file into a Conf, for use as the
// middle layer between defaults and explicit flags (§A of SPEC_FULL.md).
func readConfFile(path string) (Conf, error) {
	var overlay tomlOverlay
	overlay.Server = defaultConf

	file, err := os.Open(path)
	if err != nil {
		return Conf{}, err
	}
	defer file.Close()

	if _, err := toml.NewDecoder(file).Decode(&overlay); err != nil {
		return Conf{}, err
	}
	return overlay.Server, nil
}
