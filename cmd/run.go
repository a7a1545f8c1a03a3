package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kennt44/teachme/internal/app"
	"github.com/kennt44/teachme/internal/audio"
	"github.com/kennt44/teachme/internal/logging"
	"github.com/kennt44/teachme/internal/playback"
	"github.com/kennt44/teachme/internal/tutor"
)

// runApp wires the gateway, recorder and player, then launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)

	// The TUI owns stdout, so logs go to a file.
	log, closer, err := logging.Open(cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log file unavailable:", err)
	}
	defer closer.Close()

	gateway := tutor.NewClient(cfg.Server, tutor.WithLogger(log))

	audioCtx, err := audio.NewContext()
	if err != nil {
		// The app still runs; recording keys will report the problem.
		log.Warn().Err(err).Msg("audio unavailable")
		audioCtx = nil
	} else {
		defer audioCtx.Close()
	}

	recorderOpts := []audio.RecorderOption{audio.WithRecorderLogger(log)}
	if device := pickDevice(audioCtx, cfg.Device, log); device != nil {
		recorderOpts = append(recorderOpts, audio.WithDevice(device))
	}
	recorder := audio.NewRecorder(audioCtx, recorderOpts...)

	player := playback.NewExecPlayer(cfg.Player, log)

	log.Info().Str("server", cfg.Server).Msg("starting")
	return app.Run(app.Options{
		Gateway:  gateway,
		Recorder: recorder,
		Player:   player,
		Logger:   log,
	})
}

// pickDevice resolves a configured capture device by name, nil for the
// system default. An unknown name falls back to the default rather than
// refusing to start.
func pickDevice(ctx audio.Context, name string, log zerolog.Logger) *audio.DeviceInfo {
	if ctx == nil || name == "" {
		return nil
	}
	devices, err := ctx.Devices()
	if err != nil {
		log.Warn().Err(err).Msg("device enumeration failed")
		return nil
	}
	for i := range devices {
		if strings.EqualFold(devices[i].Name, name) {
			return &devices[i]
		}
	}
	log.Warn().Str("device", name).Msg("configured capture device not found, using default")
	return nil
}
