package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/diegok/pixbowl/internal/game"
)

// LoadTuning reads a TOML tuning file. Keys missing from the file keep their
// default values. An empty path returns the defaults.
func LoadTuning(path string) (game.Tuning, error) {
	t := game.DefaultTuning()
	if path == "" {
		return t, nil
	}

	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return game.Tuning{}, errors.Wrapf(err, "read tuning %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return game.Tuning{}, errors.Errorf("tuning %s: unknown key %q", path, undecoded[0].String())
	}
	if err := t.Validate(); err != nil {
		return game.Tuning{}, errors.Wrapf(err, "tuning %s", path)
	}
	return t, nil
}

// WriteEffectiveTuning loads the tuning at src (defaults when empty) and
// saves it to dst, giving a complete file to edit.
func WriteEffectiveTuning(src, dst string) error {
	t, err := LoadTuning(src)
	if err != nil {
		return err
	}
	return SaveTuning(dst, t)
}

// SaveTuning writes t to path as TOML
func SaveTuning(path string, t game.Tuning) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create tuning file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(t); err != nil {
		return errors.Wrapf(err, "write tuning %s", path)
	}
	return nil
}
