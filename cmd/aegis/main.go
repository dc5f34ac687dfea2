package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/aggregator"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/api"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/capture"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/config"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/control"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/database"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/detect"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/frame"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/health"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/kafka"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/notify"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/queue"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/s3"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/watchdog"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/worker"
)

func main() {
	log.Println("Main: init...")

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := database.New(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Init(); err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Camera configuration: the stored settings win when present, the YAML
	// camera list is the fallback. Snapshotted once for this run.
	cameras, err := db.ListCameraSettings(ctx)
	if err != nil {
		log.Fatalf("Failed to load camera settings: %v", err)
	}
	if len(cameras) == 0 {
		cameras = cfg.Cameras
	}
	if len(cameras) == 0 {
		log.Fatal("No cameras configured")
	}
	if err := db.SyncCameraSettings(ctx, cameras); err != nil {
		log.Printf("Main: failed to store camera settings: %v", err)
	}

	// S3
	s3Client, err := s3.NewMinioClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.FrameBucket,
		cfg.Minio.SnapshotBucket,
	)
	if err != nil {
		log.Fatalf("Failed connect to MinIO: %v", err)
	}

	// Kafka
	var producer *kafka.Producer
	var consumer *kafka.Consumer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AlertTopic, cfg.Kafka.HeartbeatTopic)
		if err != nil {
			log.Fatalf("Failed to create Kafka producer: %v", err)
		}
		defer producer.Close()

		consumer, err = kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.CommandTopic)
		if err != nil {
			log.Fatalf("Failed to create Kafka consumer: %v", err)
		}
		defer consumer.Close()
		consumer.StartListening(ctx)
	}

	// Frame channels, queues, health registry
	hub := frame.NewHub()
	for _, cam := range cameras {
		if _, err := hub.Add(cam.CameraID, cfg.Frames.Width, cfg.Frames.Height, cfg.Frames.Channels); err != nil {
			log.Fatal(err)
		}
	}
	queues := queue.NewSet(cfg.Alerting.QueueCap)
	registry := health.NewRegistry()

	// Capture producers, controlled at runtime over Kafka
	manager := control.NewManager(cameras,
		func(ctx context.Context, cam models.CameraConfig) (capture.Source, error) {
			return capture.NewReplaySource(ctx, s3Client, cam.Source, cfg.Frames.Width, cfg.Frames.Height, true)
		},
		func(cam models.CameraConfig, source capture.Source) *capture.Producer {
			return capture.NewProducer(cam.CameraID, source, hub.Get(cam.CameraID), registry, cfg.PollInterval())
		},
		consumer,
	)
	manager.StartAll(ctx)
	go manager.ListenAndRun(ctx)

	// Detection workers, one per camera per enabled kind
	snaps := worker.NewSnapshotter(cfg.Alerting.SnapshotDir, s3Client)
	for _, cam := range cameras {
		for _, kind := range cam.Detections {
			var detector worker.Detector
			switch kind {
			case models.KindMotion:
				detector = detect.NewMotion(cfg.Detection.MotionThreshold)
			case models.KindObject:
				detector = detect.NewClient(cfg.Detection.ObjectEndpoint, models.KindObject)
			case models.KindWeapon:
				detector = detect.NewClient(cfg.Detection.WeaponEndpoint, models.KindWeapon)
			case models.KindFace:
				detector = detect.NewClient(cfg.Detection.FaceEndpoint, models.KindFace)
			default:
				log.Printf("Main: unknown detection kind %q for camera %d", kind, cam.CameraID)
				continue
			}

			w := worker.New(cam.CameraID, kind, hub.Get(cam.CameraID), detector, queues, snaps, cfg.PollInterval())
			go w.Run(ctx)
		}
	}

	// Notifications
	var email *notify.Email
	if cfg.Email.Enabled {
		email = notify.NewEmail(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.Username, cfg.Email.Password, cfg.Email.AdminEmail, db)
	}
	var mqttNotifier *notify.MQTT
	if cfg.MQTT.Enabled {
		mqttNotifier, err = notify.NewMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
		if err != nil {
			log.Printf("Main: MQTT notifications disabled: %v", err)
		} else {
			defer mqttNotifier.Close()
		}
	}
	dispatcher := notify.NewDispatcher(email, mqttNotifier)

	// Aggregator
	policies := map[models.Kind]aggregator.Policy{}
	for _, kind := range []models.Kind{models.KindMotion, models.KindObject, models.KindWeapon, models.KindFace} {
		pol := cfg.PolicyFor(kind)
		policies[kind] = aggregator.Policy{
			TriggerInterval: pol.TriggerInterval(),
			DedupInterval:   pol.DedupInterval(),
			DrainOnFire:     pol.Drain(),
		}
	}
	var publisher aggregator.AlertPublisher
	if producer != nil {
		publisher = producer
	}
	agg := aggregator.New(
		queues,
		cameras,
		policies,
		db,
		aggregator.NewAlertLog(cfg.Alerting.LogPath),
		dispatcher,
		publisher,
		cfg.IdleSleep(),
	)
	go agg.Run(ctx)

	// Watchdog for stalled captures
	var sink watchdog.HeartbeatSink
	if producer != nil {
		sink = producer
	}
	go watchdog.New(registry, sink).Start(ctx)

	// Review API
	handlers := api.NewHandlers(db)
	server := &http.Server{Addr: cfg.API.Addr, Handler: handlers.Router()}
	go func() {
		log.Printf("Starting review API server on %s", cfg.API.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Main: shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server shutdown error: %v", err)
	}
}
