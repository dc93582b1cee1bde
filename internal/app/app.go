package app

import (
	"go.uber.org/fx"

	"github.com/salesline/salesline/internal/cache"
	"github.com/salesline/salesline/internal/config"
	"github.com/salesline/salesline/internal/database"
	"github.com/salesline/salesline/internal/logger"
	"github.com/salesline/salesline/internal/messaging"
	"github.com/salesline/salesline/internal/observability"
	repositorycustomer "github.com/salesline/salesline/internal/repository/customer"
	repositoryorder "github.com/salesline/salesline/internal/repository/order"
	repositorystudent "github.com/salesline/salesline/internal/repository/student"
	httpserver "github.com/salesline/salesline/internal/server/http"
	servicecustomer "github.com/salesline/salesline/internal/service/customer"
	serviceorder "github.com/salesline/salesline/internal/service/order"
	servicestudent "github.com/salesline/salesline/internal/service/student"
	transporthttp "github.com/salesline/salesline/internal/transport/http"
	"github.com/salesline/salesline/internal/worker"
	workerorder "github.com/salesline/salesline/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryorder.Module,
	repositorycustomer.Module,
	repositorystudent.Module,
	serviceorder.Module,
	servicecustomer.Module,
	servicestudent.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
