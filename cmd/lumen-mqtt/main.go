package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/denwilliams/go-lumen-mqtt/internal/command"
	"github.com/denwilliams/go-lumen-mqtt/internal/lights"
	"github.com/denwilliams/go-lumen-mqtt/internal/logging"
	"github.com/denwilliams/go-lumen-mqtt/internal/mqtt"
	"github.com/denwilliams/go-lumen-mqtt/internal/web"
	"github.com/joho/godotenv"
)

func init() {
	logging.Init(nil, logging.DefaultFlags)
	logging.Info("Loading .env file")
	if err := godotenv.Load(".env"); err != nil {
		logging.Warn("Unable to load .env")
	}
}

func main() {
	mu, err := url.Parse(os.Getenv("MQTT_URI"))
	if err != nil {
		logging.Error("Error parsing MQTT_URI %s", err)
		os.Exit(1)
	}
	baseTopic := os.Getenv("MQTT_TOPIC_PREFIX")
	subscribeTopic := os.ExpandEnv("$MQTT_TOPIC_PREFIX/set/#")
	serverPort, _ := strconv.Atoi(os.Getenv("PORT"))

	mc := mqtt.NewClient(mu, baseTopic, subscribeTopic)
	lc := lights.NewController(mqtt.NewStatusEmitter(mc))
	dispatcher := command.NewDispatcher(lc)

	if err := mc.Connect(dispatcher); err != nil {
		logging.Error("Error connecting to MQTT %s", err)
		os.Exit(1)
	}
	defer mc.Disconnect()

	go loadDevices(lc)
	go updateCache(lc)
	go discoverLoop(lc)
	// NOTE: can use lc.AddDevice to avoid having to rediscover each startup
	// err = lc.AddDevice("1.2.3.4:56700", "01:23:45:67:89:ab")
	if serverPort > 0 {
		go startServer(serverPort, dispatcher)
	}

	logging.Info("Ready")

	waitForExit()

	logging.Info("Terminating")
}

func waitForExit() {
	// Set up a channel to receive OS signals so we can gracefully exit
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	<-signalChan
	logging.Info("Exit signal received")
}

func discoverLoop(lc *lights.Controller) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	logging.Info("Performing initial discovery")
	// It can take a few runs to discover all the lights
	// Keep going until we find no new lights for a few runs
	emptyRuns := 0
	for emptyRuns < 10 {
		found := lc.DiscoverWithTimeout(15 * time.Second)
		if found == 0 {
			emptyRuns++
		} else {
			emptyRuns = 0
		}
	}
	logging.Info("Finished initial light discovery, will continue to discover every 10 minutes")

	// We want to continually call the Discover method at an interval
	// to pick up on new lights that come online
	tick := time.Tick(10 * time.Minute)

	for {
		select {
		case <-tick:
			lc.DiscoverWithTimeout(60 * time.Second)
		case <-signalChan:
			logging.Info("Background discovery loop interrupted, exiting")
			return
		}
	}
}

func loadDevices(lc *lights.Controller) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	tick := time.Tick(15 * time.Second)

	for {
		select {
		case <-tick:
			lc.LoadDevices()
		case <-signalChan:
			logging.Info("Background device loader interrupted, exiting")
			return
		}
	}
}

func updateCache(lc *lights.Controller) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	tick := time.Tick(10 * time.Minute)

	for {
		select {
		case <-tick:
			lc.RefreshDevices()
		case <-signalChan:
			logging.Info("Background cached state updater interrupted, exiting")
			return
		}
	}
}

func startServer(port int, d *command.Dispatcher) {
	logging.Info("Creating HTTP server")
	handler := web.CreateHandler(d)
	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}
	logging.Info("Starting HTTP server on port %d", port)
	if err := server.ListenAndServe(); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Error running HTTP server: %s", err)
		}
	}
}
