package student

import "go.uber.org/fx"

// Module provides the student repository to Fx.
var Module = fx.Provide(NewRepository)
