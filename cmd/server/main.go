package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gitscribe/seedwork/application/middleware"
	"gitscribe/seedwork/infrastructure/container"
)

func main() {
	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("failed to wire container: %v", err)
	}
	defer c.Close()

	if !c.Transcriber.Available() {
		log.Printf("warning: transcriber binary not found at %q, audio windows will be dropped", c.Config.Transcriber.BinaryPath)
	}
	if c.LLMClient.Name() == "none" {
		log.Printf("warning: no LLM provider configured, extraction will run in fallback mode")
	}

	if c.Config.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.CORS(), middleware.ErrorHandler())
	root := router.Group("/")
	c.MeetingRoutes.Setup(root)
	c.TaskRoutes.SetupRoutes(root)
	c.ExtractionRoutes.SetupRoutes(root)
	c.TranscriptionRoutes.SetupRoutes(root)

	srv := &http.Server{
		Addr:    c.Config.Server.Host + ":" + c.Config.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("gitscribe listening on %s", srv.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
