// SPDX-License-Identifier: EPL-2.0

// Command tonegen renders a test tone to a WAV, AIFF or raw PCM file, or
// plays it on the default sound device.
//
//	tonegen -rate 48000 -channels 2 -duration 3s -out tone.wav
//	tonegen -config tonegen.yaml -play
//	tonegen -format raw -out - | aplay -f S16_LE -r 44100
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ik5/audtone"
	"github.com/ik5/audtone/audio"
	"github.com/ik5/audtone/config"
	"github.com/ik5/audtone/formats/aiff"
	"github.com/ik5/audtone/formats/wav"
	"github.com/ik5/audtone/internal/logging"
	"github.com/ik5/audtone/internal/metrics"
	"github.com/ik5/audtone/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "tonegen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tonegen", flag.ContinueOnError)

	var (
		configPath  = fs.String("config", "", "YAML config file")
		out         = fs.String("out", "", "output path, - for stdout")
		format      = fs.String("format", "", "output format: wav, aiff or raw")
		duration    = fs.Duration("duration", 0, "length of audio to render")
		rate        = fs.Int("rate", 0, "sample rate in Hz")
		channels    = fs.Int("channels", 0, "number of channels")
		play        = fs.Bool("play", false, "play on the default device instead of writing")
		metricsAddr = fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
		debug       = fs.Bool("debug", false, "debug logging")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output.Path = *out
		case "format":
			cfg.Output.Format = *format
		case "duration":
			cfg.Output.Duration = *duration
		case "rate":
			cfg.Source.SampleRate = *rate
		case "channels":
			cfg.Source.Channels = *channels
		case "metrics-addr":
			cfg.Metrics.Addr = *metricsAddr
		case "debug":
			if *debug {
				cfg.Log.Level = "debug"
			}
		}
	})

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	sources := audio.NewRegistry()
	sources.Register("tone", audio.ToneFactory(append(cfg.ToneOptions(),
		audio.WithLogger(logger),
		audio.WithMetrics(m),
	)...))

	src, err := sources.New(cfg.Source.Kind, cfg.Source.SampleRate, cfg.Source.Channels)
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Info("rendering",
		zap.String("kind", cfg.Source.Kind),
		zap.Stringer("format", src.Format()),
		zap.Duration("duration", cfg.Output.Duration),
		zap.Bool("play", *play),
	)

	if *play {
		return playTo(ctx, src, cfg.Output.Duration, logger)
	}

	return writeTo(ctx, cfg.Output, src, stdout)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return srv
}

func playTo(ctx context.Context, src audio.MediaSource, d time.Duration, logger *zap.Logger) error {
	if err := src.Start(); err != nil {
		return err
	}
	defer src.Stop()

	out, err := output.NewOto(src.Format(), logger)
	if err != nil {
		return err
	}

	return out.Play(ctx, src, d)
}

// bufferEncoder is satisfied by the wav and aiff encoders.
type bufferEncoder interface {
	Write(b *audio.Buffer) error
	Close() error
}

func writeTo(ctx context.Context, cfg config.OutputConfig, src audio.MediaSource, stdout io.Writer) error {
	toStdout := cfg.Path == "" || cfg.Path == "-"

	if toStdout {
		switch cfg.Format {
		case "raw":
			_, err := audtone.RenderTo(stdout, src, cfg.Duration)
			return err
		case "wav":
			pcm, err := audtone.Render(src, cfg.Duration)
			if err != nil {
				return err
			}
			return wav.WritePCM16(stdout, src.Format(), pcm)
		default:
			return fmt.Errorf("%s output needs a file path", cfg.Format)
		}
	}

	f, err := os.Create(cfg.Path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	var enc bufferEncoder
	switch cfg.Format {
	case "raw":
		if _, err := audtone.RenderTo(f, src, cfg.Duration); err != nil {
			return err
		}
		return f.Close()
	case "wav":
		enc, err = wav.NewEncoder(f, src.Format())
	case "aiff":
		enc, err = aiff.NewEncoder(f, src.Format())
	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
	if err != nil {
		return err
	}

	if err := encode(ctx, enc, src, audtone.Frames(src.Format(), cfg.Duration)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return f.Close()
}

// encode feeds exactly frames frames of src into enc.
func encode(ctx context.Context, enc bufferEncoder, src audio.MediaSource, frames int64) (err error) {
	if err := src.Start(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, src.Stop())
	}()

	for frames > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		buf, err := src.Read(nil)
		if err != nil {
			return err
		}

		if int64(buf.Frames()) > frames {
			buf.Truncate(int(frames))
		}
		frames -= int64(buf.Frames())

		err = enc.Write(buf)
		buf.Release()
		if err != nil {
			return err
		}
	}

	return nil
}
