package migrate

import (
	"log/slog"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// RenameReservedParameters returns the migration renaming parameters that
// use the old spelling of a reserved name.
func RenameReservedParameters() Migration {
	return Migration{
		Name:   "rename-reserved-parameters",
		Before: version.ReservedParameterNames,
		Run:    renameReservedParameters,
	}
}

func renameReservedParameters(g *Graph, r *Report, logger *slog.Logger) {
	model.WalkAll(g.Components, func(c *model.Component) bool {
		for _, p := range c.Parameters {
			b := p.Base()
			if name, ok := model.ReservedParameterNames[b.Name]; ok {
				logger.Debug("renamed reserved parameter", "component", c.Name, "from", b.Name, "to", name)
				b.Name = name
				r.Renamed++
			}
		}
		return true
	})
}
