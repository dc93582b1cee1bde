package student

import "go.uber.org/fx"

// Module provides the student service to Fx.
var Module = fx.Provide(NewService)
