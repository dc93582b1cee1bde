package main

import (
	"go.uber.org/fx"

	"github.com/salesline/salesline/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
