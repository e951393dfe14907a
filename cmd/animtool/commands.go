package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/internal/config"
	"github.com/Faultbox/skelanim/internal/logger"
	"github.com/Faultbox/skelanim/pkg/anim"
	"github.com/Faultbox/skelanim/pkg/gltfimport"
)

var errNoClips = errors.New("model has no animations")

// session is a loaded model ready for playback.
type session struct {
	cfg   *config.Config
	model string
	rig   *gltfimport.Result
}

// open parses the command flags, loads config and logging, and imports the
// model named by the first positional argument.
func open(name string, args []string) (*session, error) {
	var flags config.Flags
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags.Register(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return nil, fmt.Errorf("usage: animtool %s [options] <model>", name)
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}

	opts := []gltfimport.Option{gltfimport.WithLogger(logger.Named("gltf"))}
	if cfg.Import.Skin != 0 {
		opts = append(opts, gltfimport.WithSkin(cfg.Import.Skin))
	}

	model := fs.Arg(0)
	start := time.Now()
	rig, err := gltfimport.Open(model, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("model loaded",
		zap.String("path", model),
		zap.Int("joints", rig.Skeleton.JointCount()),
		zap.Int("clips", len(rig.Clips)),
		zap.Duration("took", time.Since(start)))

	return &session{cfg: cfg, model: model, rig: rig}, nil
}

// controller returns a controller playing the configured clip.
func (s *session) controller() (*anim.Controller, *anim.Clip, error) {
	if len(s.rig.Clips) == 0 {
		return nil, nil, errNoClips
	}

	ctrl := anim.NewController(s.rig.Skeleton, anim.WithLogger(logger.Named("anim")))
	for _, c := range s.rig.Clips {
		c.SetLogger(logger.Named("anim"))
		if s.cfg.Playback.Loop != nil {
			c.SetLooping(*s.cfg.Playback.Loop)
		}
		ctrl.AddClip(c)
	}

	var err error
	if s.cfg.Playback.Clip == "" {
		err = ctrl.Play(0)
	} else {
		err = ctrl.PlayByName(s.cfg.Playback.Clip)
	}
	if err != nil {
		return nil, nil, err
	}
	return ctrl, ctrl.Clip(ctrl.CurrentClip()), nil
}

func (s *session) output() (io.WriteCloser, error) {
	if s.cfg.Output.Path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(s.cfg.Output.Path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func cmdInfo(args []string) error {
	s, err := open("info", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	printInfo(os.Stdout, s.model, s.rig)
	return nil
}

func cmdSample(args []string) error {
	s, err := open("sample", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctrl, clip, err := s.controller()
	if err != nil {
		return err
	}
	ctrl.Update(s.cfg.Playback.StartTime)

	report := buildReport(s.model, ctrl, clip, false)

	w, err := s.output()
	if err != nil {
		return err
	}
	defer w.Close()

	if s.cfg.Output.Format == "yaml" {
		return writeYAML(w, report)
	}
	printPose(w, report, s.cfg.Output.Precision)
	return nil
}

func cmdPlay(args []string) error {
	s, err := open("play", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctrl, clip, err := s.controller()
	if err != nil {
		return err
	}

	dt := 1 / float32(s.cfg.Playback.FPS)
	frames := int(s.cfg.Playback.Duration.Seconds() * float64(s.cfg.Playback.FPS))
	logger.Debug("playing",
		zap.String("clip", clip.Name()),
		zap.Int("frames", frames),
		zap.Float32("dt", dt))

	ctrl.Update(s.cfg.Playback.StartTime)
	for frame := 0; frame <= frames; frame++ {
		if frame > 0 {
			ctrl.Update(dt)
		}
		printFrame(os.Stdout, frame, ctrl, clip, s.cfg.Output.Precision)
	}
	return nil
}

func cmdDump(args []string) error {
	s, err := open("dump", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctrl, clip, err := s.controller()
	if err != nil {
		return err
	}
	ctrl.Update(s.cfg.Playback.StartTime)

	w, err := s.output()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := writeYAML(w, buildReport(s.model, ctrl, clip, true)); err != nil {
		return err
	}
	if s.cfg.Output.Path != "" {
		logger.Info("pose written", zap.String("path", s.cfg.Output.Path))
	}
	return nil
}

// cmdConfig writes the config that the other commands would run with:
// defaults, then the config file, then the given flags.
func cmdConfig(args []string) error {
	var flags config.Flags
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	flags.Register(fs)
	fs.Parse(args)

	cfg, err := config.Load(&flags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()

	path, err := saveConfig(cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	logger.Sugar.Infof("config written to %s", path)
	return nil
}

// saveConfig writes cfg to path, or to the user config file when path is empty.
func saveConfig(cfg *config.Config, path string) (string, error) {
	if path == "" {
		return config.UserConfigPath(), cfg.Save()
	}
	return path, cfg.SaveTo(path)
}
