package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avelez/county-health-api/internal/config"
	"github.com/avelez/county-health-api/internal/server"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	h := server.NewHandler(server.NewStore(cfg.DBPath))
	server.RegisterRoutes(e, h)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (db=%s)", addr, cfg.DBPath)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
