package main

import (
	"testing"

	"screenworms/sim"
)

func TestKeyTranslatorBasicTransitions(t *testing.T) {
	var k KeyTranslator

	if k.Direction() != sim.Straight {
		t.Fatalf("zero value must be STRAIGHT")
	}

	k.Apply("LEFT_KEY_DOWN")
	if k.Direction() != sim.Left {
		t.Fatalf("got %v, want LEFT", k.Direction())
	}

	k.Apply("RIGHT_KEY_DOWN")
	if k.Direction() != sim.Right {
		t.Fatalf("RIGHT_KEY_DOWN must override a held LEFT")
	}

	k.Apply("LEFT_KEY_UP")
	if k.Direction() != sim.Right {
		t.Fatalf("an UP for a key that isn't currently held must be a no-op")
	}

	k.Apply("RIGHT_KEY_UP")
	if k.Direction() != sim.Straight {
		t.Fatalf("releasing the held key must return to STRAIGHT")
	}
}

func TestKeyTranslatorIgnoresUnknownLines(t *testing.T) {
	var k KeyTranslator
	k.Apply("LEFT_KEY_DOWN")
	k.Apply("garbage")
	if k.Direction() != sim.Left {
		t.Fatalf("unrecognized lines must not change state")
	}
}
