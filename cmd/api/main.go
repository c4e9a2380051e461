package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Nisith-Naman/Health/internal/adapters/auth/walletgw"
	"github.com/Nisith-Naman/Health/internal/platform/logger"
	"github.com/Nisith-Naman/Health/internal/ports/auth"
	"github.com/Nisith-Naman/Health/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	appLog := logger.NewFromEnv()

	// Sin gateway configurado corre en modo dev (header X-Debug-Address).
	var verifier auth.AuthVerifier
	if base := os.Getenv("WALLET_GW_URL"); base != "" {
		client, err := walletgw.NewClient(walletgw.Config{
			BaseURL: base,
			APIKey:  os.Getenv("WALLET_GW_API_KEY"),
		})
		if err != nil {
			log.Fatalf("wallet gateway config: %v", err)
		}
		verifier = walletgw.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       appLog,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
