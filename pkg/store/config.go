package store

import (
	"errors"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/diary/pkg/media"
)

// ConfigPathEnv names a directory holding a .diary config file.
const ConfigPathEnv = "DIARY_CONFIG_PATH"

type Config interface {
	BasePath() string
	AudioDir() string
	RecordCommand() string
	PlayCommand() string
	PrintCommand() string
	LogLevel() string
}

func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.diary.db")
	v.SetDefault("audio.dir", "")
	v.SetDefault("audio.record_command", media.DefaultRecordCommand)
	v.SetDefault("audio.play_command", media.DefaultPlayCommand)
	v.SetDefault("print.command", "lp")
	v.SetDefault("log.level", "warn")
	v.SetConfigName(".diary") // .yaml is implicit
	v.SetEnvPrefix("DIARY")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	audio := v.GetString("audio.dir")
	if audio == "" {
		audio = filepath.Join(base, audioDir)
	}
	audio, err = homedir.Expand(audio)
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:      base,
		Audio:     audio,
		RecordCmd: v.GetString("audio.record_command"),
		PlayCmd:   v.GetString("audio.play_command"),
		PrintCmd:  v.GetString("print.command"),
		Level:     v.GetString("log.level"),
		File:      v.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path      string `json:"path"`
	Audio     string `json:"audioDir"`
	RecordCmd string `json:"recordCommand"`
	PlayCmd   string `json:"playCommand"`
	PrintCmd  string `json:"printCommand"`
	Level     string `json:"logLevel"`
	File      string `json:"file,omitempty"`
}

func (f *fileConfig) BasePath() string      { return f.Path }
func (f *fileConfig) AudioDir() string      { return f.Audio }
func (f *fileConfig) RecordCommand() string { return f.RecordCmd }
func (f *fileConfig) PlayCommand() string   { return f.PlayCmd }
func (f *fileConfig) PrintCommand() string  { return f.PrintCmd }
func (f *fileConfig) LogLevel() string      { return f.Level }

// ConfigFile is the config file viper read, if any.
func ConfigFile(cfg Config) string {
	if f, ok := cfg.(*fileConfig); ok {
		return f.File
	}
	return ""
}
