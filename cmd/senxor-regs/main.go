// senxor-regs is an interactive register shell for SenXor devices attached
// over USB serial or I2C.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jonas-koeritz/senxor"
	"github.com/jonas-koeritz/senxor/i2c"
	"github.com/jonas-koeritz/senxor/regmap"
)

func main() {
	port := flag.String("port", "", "serial port (autodetect if empty)")
	i2cBus := flag.Int("i2c-bus", -1, "I2C bus number, selects the I2C interface")
	i2cAddr := flag.Uint("i2c-addr", i2c.DefaultAddr, "I2C device address")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fields, closer, err := connect(logger, *port, *i2cBus, uint8(*i2cAddr))
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(fields); err != nil {
		logger.Error("shell failed", "error", err)
		os.Exit(1)
	}
}

func connect(logger *slog.Logger, port string, bus int, addr uint8) (*regmap.Fields, io.Closer, error) {
	if bus >= 0 {
		t, err := i2c.Open(bus, addr, i2c.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		store := regmap.NewStore(regmap.MI48(), t, regmap.WithLogger(logger))
		return regmap.NewFields(store), t, nil
	}

	dev, err := senxor.Open(port, senxor.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return dev.Fields(), dev, nil
}

func run(fields *regmap.Fields) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "senxor> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sh := &shell{fields: fields, out: rl.Stdout()}
	fmt.Fprintln(sh.out, "Type 'help' for available commands.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return nil
		}

		err = sh.exec(strings.TrimSpace(line))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}
