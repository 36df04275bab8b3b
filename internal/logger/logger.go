// Package logger sets up the internal (logrus) and the access logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Log file names
const (
	internalLogFile = "knowledgehub.log"
	accessLogFile   = "access.log"
	errorLogFile    = "errors.log"
)

// Conf configures where a logger writes to. If Dir is set, logs are written to
// a file in that directory; if StdErr is set they are (also) written to
// stderr.
type Conf struct {
	Dir    string `yaml:"dir"`
	StdErr bool   `yaml:"stderr"`
}

// InternalConf configures the internal logger
type InternalConf struct {
	Conf `yaml:",inline"`
	// Level sets the verbosity for internal logs (e.g. DEBUG, INFO)
	Level string `yaml:"level"`
	// Smart duplicates error logs into a dedicated file
	Smart SmartConf `yaml:"smart"`
}

// SmartConf configures 'smart' logging; if enabled, error logs are also
// written to Dir
type SmartConf struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

func openLogFile(dir, name string) (*os.File, error) {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	return f, errors.Wrap(err, "could not open log file")
}

func writer(conf Conf, name string, fallback io.Writer) (io.Writer, error) {
	if conf.Dir == "" {
		return fallback, nil
	}
	f, err := openLogFile(conf.Dir, name)
	if err != nil {
		return nil, err
	}
	if conf.StdErr {
		return io.MultiWriter(f, os.Stderr), nil
	}
	return f, nil
}

// Init initializes the internal logger
func Init(conf InternalConf) error {
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)
	level := log.InfoLevel
	if conf.Level != "" {
		var err error
		level, err = log.ParseLevel(conf.Level)
		if err != nil {
			return errors.Wrapf(err, "invalid log level '%s'", conf.Level)
		}
	}
	log.SetLevel(level)

	out, err := writer(conf.Conf, internalLogFile, os.Stderr)
	if err != nil {
		return err
	}
	log.SetOutput(out)

	if conf.Smart.Enabled {
		dir := conf.Smart.Dir
		if dir == "" {
			dir = conf.Dir
		}
		if dir == "" {
			return errors.New("smart logging requires a directory")
		}
		f, err := openLogFile(dir, errorLogFile)
		if err != nil {
			return err
		}
		log.AddHook(newErrorHook(f))
	}
	return nil
}

// AccessWriter returns the writer for access logs
func AccessWriter(conf Conf) (io.Writer, error) {
	return writer(conf, accessLogFile, os.Stdout)
}

// errorHook writes all entries of level error and above to its writer
type errorHook struct {
	w         io.Writer
	formatter log.Formatter
}

func newErrorHook(w io.Writer) *errorHook {
	return &errorHook{
		w:         w,
		formatter: &log.JSONFormatter{},
	}
}

// Levels implements the logrus.Hook interface
func (h *errorHook) Levels() []log.Level {
	return []log.Level{
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
	}
}

// Fire implements the logrus.Hook interface
func (h *errorHook) Fire(entry *log.Entry) error {
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.w.Write(data)
	return err
}
