// senxor-capture grabs a single frame from a SenXor and saves it as PNG.
package main

import (
	"context"
	"flag"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/jonas-koeritz/senxor"
)

func main() {
	port := flag.String("port", "", "serial port (autodetected if empty)")
	fps := flag.Float64("fps", 25.0, "frame rate to configure before capturing")
	out := flag.String("o", "frame.png", "output file")
	raw := flag.Bool("raw", false, "store raw deci-Kelvin values instead of a normalized image")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *port, *fps, *out, *raw); err != nil {
		logger.Error("capture failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, port string, fps float64, out string, raw bool) error {
	c, err := senxor.Open(port, senxor.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Close()

	id, err := c.Identity()
	if err != nil {
		return err
	}
	fw, err := c.FirmwareVersion()
	if err != nil {
		return err
	}
	logger.Info("opened SenXor device", "model", id.Model, "id", id.String(), "firmware", fw)

	actual, err := c.SetFramerate(fps)
	if err != nil {
		logger.Warn("failed to set frame rate", "error", err)
	} else {
		logger.Info("frame rate set", "fps", actual)
	}

	if err := c.StartStream(); err != nil {
		return err
	}
	defer c.StopStream()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	frame, err := c.ReadFrame(ctx)
	if err != nil {
		return err
	}

	frameFile, err := os.Create(out)
	if err != nil {
		return err
	}
	defer frameFile.Close()

	img := frame.Normalized()
	if raw {
		img = frame.Image()
	}
	if err := png.Encode(frameFile, img); err != nil {
		return err
	}
	logger.Info("frame saved", "file", out, "width", frame.Width, "height", frame.Height)
	return nil
}
