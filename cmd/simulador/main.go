package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jjariza/productos-cliente/internal/simulador"
	"github.com/jjariza/productos-cliente/pkg/config"
	"github.com/jjariza/productos-cliente/pkg/logger"
)

// El simulador levanta los dos microservicios (productos e inventario) sobre
// un mismo store en memoria, con el mismo contrato JSON:API que los backends
// reales. Pensado para desarrollo local de la consola y de los tests.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	store := simulador.NewStore()
	store.Seed()

	productsApp := simulador.New(simulador.Config{
		AppName:    "simulador-productos",
		APIKey:     cfg.Auth.APIKey,
		HeaderName: cfg.Auth.HeaderName,
	}, store)
	inventoryApp := simulador.New(simulador.Config{
		AppName:    "simulador-inventario",
		APIKey:     cfg.Auth.APIKey,
		HeaderName: cfg.Auth.HeaderName,
	}, store)

	productsAddr := addrOf(cfg.Products.BaseURL, ":8081")
	inventoryAddr := addrOf(cfg.Inventory.BaseURL, ":8082")

	log.Info().
		Str("productos", productsAddr).
		Str("inventario", inventoryAddr).
		Msg("iniciando simulador")

	go func() {
		if err := productsApp.Listen(productsAddr); err != nil {
			log.Error().Err(err).Msg("servidor de productos finalizado")
		}
	}()
	go func() {
		if err := inventoryApp.Listen(inventoryAddr); err != nil {
			log.Error().Err(err).Msg("servidor de inventario finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidores...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := productsApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor de productos")
	}
	if err := inventoryApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor de inventario")
	}

	log.Info().Msg("simulador detenido")
}

// addrOf extrae el puerto de una URL base; si no lo encuentra usa el valor por defecto.
func addrOf(baseURL, def string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Port() == "" {
		return def
	}
	return ":" + u.Port()
}
