package script

import (
	"github.com/CaioVieiraF/olt-access/config"
)

// Migrate rebuilds the units registered in old on top of base. The result
// holds base's fields followed by the nested provisioning blocks of every
// unit extracted from old. Extraction diagnostics are returned for the
// caller to report.
func (g Generator) Migrate(old, base *config.Config) (*config.Config, []config.Diagnostic, error) {
	out := config.New()
	out.Merge(base)

	units, diags := old.ExtractONUs()
	generated, err := g.ConfigAll(units)
	if err != nil {
		return nil, diags, err
	}
	out.Merge(generated)
	return out, diags, nil
}
