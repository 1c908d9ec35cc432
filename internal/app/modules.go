package app

import (
	"github.com/specialistvlad/framegrid/internal/registry"
	"github.com/specialistvlad/framegrid/modules/crop"
	"github.com/specialistvlad/framegrid/modules/passthrough"
	"github.com/specialistvlad/framegrid/modules/rawsink"
	"github.com/specialistvlad/framegrid/modules/split"
	"github.com/specialistvlad/framegrid/modules/testsrc"
)

// coreModules is the definitive list of all stage modules that are compiled
// into the framegrid binary.
var coreModules = []registry.Module{
	&testsrc.Module{},
	&crop.Module{},
	&passthrough.Module{},
	&split.Module{},
	&rawsink.Module{},
}
