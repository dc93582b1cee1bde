package http

import (
	"go.uber.org/fx"

	customertransport "github.com/salesline/salesline/internal/transport/http/customer"
	ordertransport "github.com/salesline/salesline/internal/transport/http/order"
	studenttransport "github.com/salesline/salesline/internal/transport/http/student"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	ordertransport.Module,
	customertransport.Module,
	studenttransport.Module,
)
