package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/logger"
	"github.com/Domenick1991/seatbooking/internal/notification"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("seatbooking-worker", pflag.ExitOnError)
	cfgPath := flags.String("config", defaultConfigPath(), "path to the YAML config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("worker needs kafka.brokers in %s", *cfgPath)
	}

	lg := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.SeatEventsTopic
	}
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic)
	defer consumer.Close()

	sender := notification.NewSender(lg)

	lg.Info("worker consuming seat events", "topic", topic, "group_id", cfg.Kafka.GroupID)
	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		event, err := kafka.DecodeSeatEvent(msg)
		if err != nil {
			lg.Warn("skipping undecodable message", "offset", msg.Offset, "error", err)
			return nil
		}
		return sender.Send(ctx, event)
	})
	if err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	lg.Info("worker stopped")
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
