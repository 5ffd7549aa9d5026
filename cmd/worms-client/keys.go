// Front-end key translation

package main

import "screenworms/sim"

// KeyTranslator holds the current turn_direction as derived from the
// front-end's key-up/key-down stream (§4.9). Zero value is STRAIGHT.
type KeyTranslator struct {
	dir sim.TurnDirection
}

// Direction returns the currently latched turn direction.
func (k *KeyTranslator) Direction() sim.TurnDirection {
	return k.dir
}

// Apply advances the translator's state by one front-end line. Lines other
// than the four recognized key events leave the state unchanged.
func (k *KeyTranslator) Apply(line string) {
	switch line {
	case "LEFT_KEY_DOWN":
		k.dir = sim.Left
	case "RIGHT_KEY_DOWN":
		k.dir = sim.Right
	case "LEFT_KEY_UP":
		if k.dir == sim.Left {
			k.dir = sim.Straight
		}
	case "RIGHT_KEY_UP":
		if k.dir == sim.Right {
			k.dir = sim.Straight
		}
	}
}
