package main

import (
	"github.com/pomanager/po-admin/internal/app"
	"github.com/pomanager/po-admin/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
