package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/autoorbit/internal/config"
	"github.com/xkilldash9x/autoorbit/internal/hotkey"
	"github.com/xkilldash9x/autoorbit/internal/input"
	"github.com/xkilldash9x/autoorbit/internal/motion"
	"github.com/xkilldash9x/autoorbit/internal/observability"
)

// newRunCmd creates and configures the `run` command.
func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Starts an idle-motion session",
		Args:  cobra.NoArgs,
		// Bind flags to their Viper keys in PreRunE so command-line flags
		// correctly override values from the config file and environment.
		PreRunE: func(cmd *cobra.Command, args []string) error {
			bindings := map[string]string{
				"motion.base_radius":           "radius",
				"motion.angular_velocity":      "angular-velocity",
				"motion.jitter":                "jitter",
				"motion.tick_interval":         "interval",
				"motion.startup_delay":         "delay",
				"motion.screen_margin":         "margin",
				"motion.enable_keyboard_steps": "steps",
				"motion.enable_saccades":       "saccades",
				"motion.enable_utility_hold":   "utility-hold",
				"motion.seed":                  "seed",
			}
			for key, flag := range bindings {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			params, err := resolveParams()
			if err != nil {
				return err
			}

			sink, err := input.NewSendInputSink()
			if err != nil {
				return fmt.Errorf("initialize input sink: %w", err)
			}

			return runSession(cmd.Context(), params, sink, sink, logger)
		},
	}

	flags := runCmd.Flags()
	flags.Float64("radius", 220.0, "nominal orbit radius in pixels")
	flags.Float64("angular-velocity", 1.25, "orbit sweep rate in radians per second")
	flags.Float64("jitter", 6.0, "fine motion texture amplitude in pixels")
	flags.Duration("interval", 10*time.Millisecond, "motion tick interval")
	flags.Duration("delay", 5*time.Second, "startup countdown before motion begins")
	flags.Float64("margin", 2.0, "minimum distance from screen edges in pixels")
	flags.Bool("steps", true, "tap W/A/S/D at random intervals")
	flags.Bool("saccades", true, "add decaying micro-saccade impulses")
	flags.Bool("utility-hold", false, "hold B for 4s every 180s")
	flags.Int64("seed", 0, "session seed (0 picks a random seed)")

	return runCmd
}

// resolveParams folds the final viper state (file, env, bound flags) into
// engine parameters.
func resolveParams() (motion.Params, error) {
	cfg, err := config.NewConfigFromViper(viper.GetViper())
	if err != nil {
		return motion.Params{}, err
	}
	p := cfg.Motion.Params()
	p.Normalize()
	if err := p.Validate(); err != nil {
		return motion.Params{}, err
	}
	return p, nil
}

// runSession supervises one session: the motion loop, the global stop hotkey
// and the status reporter, tied together so any stop path winds down all
// three.
func runSession(ctx context.Context, params motion.Params, sink motion.Sink, screen motion.ScreenGeometry, logger *zap.Logger) error {
	logSessionBlueprint(logger, params)

	status := make(chan motion.Status, 64)
	loop, err := motion.NewLoop(params, sink, screen, logger.Named("motion"), status)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := hotkey.Wait(gctx, logger.Named("hotkey"))
		if err == nil {
			// Hotkey pressed: wind down the session.
			cancel()
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return fmt.Errorf("hotkey listener: %w", err)
	})

	var outcome motion.Outcome
	g.Go(func() error {
		defer cancel()
		var runErr error
		outcome, runErr = loop.Run(gctx)
		return runErr
	})

	g.Go(func() error {
		reportStatus(gctx, status, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	logger.Info("Session finished.", zap.Stringer("outcome", outcome))
	return nil
}

// reportStatus narrates session progress. Countdown events arrive ten times a
// second; only whole-second boundaries are logged.
func reportStatus(ctx context.Context, status <-chan motion.Status, logger *zap.Logger) {
	lastSecond := -1
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-status:
			switch s.Kind {
			case motion.StatusCountdown:
				sec := int(s.Remaining.Seconds())
				if sec != lastSecond {
					lastSecond = sec
					logger.Info("Engaging choreography.", zap.Int("in_seconds", sec))
				}
			case motion.StatusRunning:
				logger.Info("Choreography live. Press Ctrl+Alt+Q or Ctrl+C to disengage.")
			case motion.StatusStopped:
				logger.Info("Choreography stopped.", zap.Stringer("outcome", s.Outcome))
			}
		}
	}
}

// logSessionBlueprint records the resolved session shape at start, one field
// per tunable that matters for reproducing the run.
func logSessionBlueprint(logger *zap.Logger, p motion.Params) {
	logger.Info("Session blueprint.",
		zap.Float64("base_radius_px", p.BaseRadius),
		zap.Float64("angular_velocity_rad_s", p.AngularVelocity),
		zap.Float64("jitter_px", p.Jitter),
		zap.Duration("tick_interval", p.TickInterval),
		zap.Duration("startup_delay", p.StartupDelay),
		zap.Float64("screen_margin_px", p.ScreenMargin),
		zap.Bool("keyboard_steps", p.EnableKeyboardSteps),
		zap.Bool("saccades", p.EnableSaccades),
		zap.Bool("utility_hold", p.EnableUtilityHold),
		zap.Duration("step_interval_min", p.StepInterval.Low),
		zap.Duration("step_interval_max", p.StepInterval.High),
		zap.Duration("step_hold_min", p.StepHold.Low),
		zap.Duration("step_hold_max", p.StepHold.High),
		zap.Duration("saccade_interval_min", p.SaccadeInterval.Low),
		zap.Duration("saccade_interval_max", p.SaccadeInterval.High),
	)
}
