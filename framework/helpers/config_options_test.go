package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type widget struct {
	name string
	size int
}

func withName(name string) OptionFunc[widget] {
	return func(w *widget) error {
		w.name = name
		return nil
	}
}

func withSize(size int) OptionFunc[widget] {
	return func(w *widget) error {
		if size < 0 {
			return errors.New("negative size")
		}
		w.size = size
		return nil
	}
}

func TestApplyOptions(t *testing.T) {
	var w widget
	assert.NoError(t, ApplyOptions(&w, withName("a"), withSize(2)))
	assert.Equal(t, widget{name: "a", size: 2}, w)
}

func TestApplyOptionsStopsAtFirstError(t *testing.T) {
	var w widget
	err := ApplyOptions(&w, withSize(-1), withName("never"))
	assert.EqualError(t, err, "negative size")
	assert.Equal(t, "", w.name)
}
