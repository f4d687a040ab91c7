package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"emart-gateway/internal/downstream/compliance"
	"emart-gateway/internal/downstream/orderproc"
	"emart-gateway/internal/notify"
	"emart-gateway/internal/order"
	"emart-gateway/internal/otp"
	otpmetrics "emart-gateway/internal/otp/metrics"
	otpstore "emart-gateway/internal/otp/store"
	"emart-gateway/internal/payment"
	paymetrics "emart-gateway/internal/payment/metrics"
	"emart-gateway/internal/platform/audit"
	"emart-gateway/internal/platform/config"
	"emart-gateway/internal/platform/httpserver"
	"emart-gateway/internal/platform/logger"
	platformredis "emart-gateway/internal/platform/redis"
	"emart-gateway/internal/scenario"
	httptransport "emart-gateway/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	scenarios := scenario.NewFromFile(cfg.ScenarioPath, log)

	orderClient := orderproc.NewClient(cfg.OrderProcessorURL,
		orderproc.WithLogger(log),
		orderproc.WithTimeout(cfg.DownstreamTimeout),
	)
	complianceClient := compliance.NewClient(cfg.ComplianceURL,
		compliance.WithTimeout(cfg.DownstreamTimeout),
	)

	var otpStore otpstore.Store = otpstore.NewInMemory()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable, using in-process OTP store", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		otpStore = otpstore.NewRedis(redisClient)
		log.Info("OTP store backed by redis")
	}

	otpService := otp.New(otpStore, orderClient, notify.NewSMTPSender(cfg.SMTP),
		otp.WithLogger(log),
		otp.WithMetrics(otpmetrics.New()),
		otp.WithTTL(cfg.OTPTTL),
	)

	var auditPublisher audit.Publisher = audit.NewLogPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka unavailable, audit events go to the log", "error", err)
		} else {
			defer kafka.Close()
			auditPublisher = kafka
			log.Info("audit events published to kafka", "topic", cfg.AuditTopic)
		}
	}

	orderService := order.NewService(scenarios, orderClient,
		order.WithLogger(log),
		order.WithSlowDelay(cfg.OrderSlowDelay),
	)
	paymentService := payment.New(scenarios, complianceClient, orderClient,
		payment.WithLogger(log),
		payment.WithMetrics(paymetrics.New()),
		payment.WithAudit(auditPublisher),
		payment.WithSlowDelay(cfg.PaymentSlowDelay),
	)

	handler := httptransport.NewHandler(otpService, paymentService, orderClient, orderService, log)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting gateway", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
