package app

import (
	"github.com/specialistvlad/spectrumgo/internal/registry"
	"github.com/specialistvlad/spectrumgo/modules/mssm"
	"github.com/specialistvlad/spectrumgo/modules/qedqcd"
)

// coreModules is the definitive list of all backend modules that are
// compiled into the spectrumgo binary.
var coreModules = []registry.Module{
	&qedqcd.Module{},
	&mssm.Module{},
}
