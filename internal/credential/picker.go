package credential

import (
	"context"

	"fridgechef/internal/config"
)

// EnvPicker is the key picker for plain server deployments: there is no
// interactive selector, the "selection" is whatever credential the
// environment holds right now. Opening it just re-reads the cell so a key
// injected after startup is picked up.
type EnvPicker struct {
	Cred *config.Cell
}

var _ Picker = EnvPicker{}

func (p EnvPicker) HasSelectedKey(context.Context) (bool, error) {
	return config.UsableCredential(p.Cred.Refresh()), nil
}

func (p EnvPicker) OpenSelector(context.Context) error {
	p.Cred.Refresh()
	return nil
}
