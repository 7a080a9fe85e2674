// The dolls command runs the network front end: it wires the packet
// registry, optional traffic capture and signal handling around a single
// listening server.
package main

import (
	"flag"
	"github.com/DarcJC/Dolls"
	"github.com/DarcJC/Dolls/internal/capture"
	"github.com/DarcJC/Dolls/logger"
	"github.com/DarcJC/Dolls/processor"
	"os"
	"os/signal"
	"syscall"
)

var configFlag = flag.String("config", "./", "Path to the directory containing the server config file")

func main() {
	flag.Parse()

	config, err := LoadConfig(*configFlag)
	if err != nil {
		logger.Default.Fatalf("load config: %s", err)
	}
	if err := logger.Configure(config.LogLevel, config.LogFilePath); err != nil {
		logger.Default.Fatalf("configure logging: %s", err)
	}

	opt := &dolls.ServerOption{
		Host:                 config.Host,
		Port:                 config.Port,
		Registrations:        processor.Registrations(),
		DoNotPrintProcessors: config.QuietStartup,
	}
	if config.Capture.File != "" {
		rec, err := capture.OpenFile(config.Capture.File)
		if err != nil {
			logger.Default.Fatalf("open capture file: %s", err)
		}
		defer rec.Close() //nolint
		opt.Recorder = rec
		logger.Default.Infof("recording inbound packets to %s", config.Capture.File)
	}

	server := dolls.NewServer(opt)

	// Ctrl-C and SIGTERM shut the server down gracefully.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Default.Infof("shutting down")
		if err := server.Stop(); err != nil {
			logger.Default.Errorf("stop server: %s", err)
		}
	}()

	if err := server.Run(); err != nil && err != dolls.ErrServerStopped {
		logger.Default.Fatalf("serve: %s", err)
	}
}
