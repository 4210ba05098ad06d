package app

import (
	"github.com/c88lopez/vial-form-app-api/config"
	"github.com/c88lopez/vial-form-app-api/form"
)

type App struct {
	*form.Store
	config.Config
}
