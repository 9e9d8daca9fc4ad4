package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/client"
	"github.com/Aashish23092/ocr-invoice-extraction/config"
	"github.com/Aashish23092/ocr-invoice-extraction/handler"
	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/Aashish23092/ocr-invoice-extraction/utils/lineitem"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()
	logger := config.NewLogger(cfg)
	gin.SetMode(cfg.GinMode)

	extractionCfg, err := config.LoadExtractionConfig(cfg.ExtractionConfigPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load extraction config")
	}

	extractor := lineitem.NewExtractor(
		lineitem.WithConfig(extractionCfg),
		lineitem.WithObserver(lineitem.NewLogObserver(logger.WithField("component", "lineitem"))),
	)

	// OCR engines, tried in this order
	recognizers := []service.TextRecognizer{
		client.NewTesseractClient(cfg.TesseractDataPath, cfg.TesseractLanguage, logger.WithField("component", "tesseract")),
	}
	if paddle := client.NewPaddleClient(cfg.PaddleAPIURL, cfg.PaddleTimeout, logger.WithField("component", "paddleocr")); paddle.Enabled() {
		recognizers = append(recognizers, paddle)
	}

	invoiceService := service.NewInvoiceService(
		extractor,
		service.NewPDFProcessor(),
		logger.WithField("component", "service"),
		recognizers...,
	)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, cfg.MaxFileSize, logger)
	router := handler.NewRouter(invoiceHandler, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithFields(logrus.Fields{
			"port":      cfg.ServerPort,
			"ocr":       len(recognizers),
			"max_bytes": cfg.MaxFileSize,
		}).Info("Starting OCR Invoice Extraction Service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
}
