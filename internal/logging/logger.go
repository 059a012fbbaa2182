package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/2beens/liftlog/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxLogFileSizeMB = 50

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	MaxFileSizeMB    int
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned func flushes
// buffered sentry events and should be called before the process exits.
func Setup(params LoggerSetupParams) (flush func()) {
	flush = func() {}

	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.SentryEnabled {
		if params.SentryDSN == "" {
			logrus.Warnln("sentry enabled, but SENTRY_DSN not set")
		} else if err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			TracesSampleRate: 1.0,
			ServerName:       params.SentryServerName,
		}); err != nil {
			logrus.Errorf("sentry init: %s", err)
		} else {
			logrus.AddHook(NewSentryHook([]logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			flush = func() {
				ok := sentry.Flush(5 * time.Second)
				logrus.Debugf("sentry flush ok: %t", ok)
			}
			logrus.Infoln("sentry set up")
		}
	}

	logrus.SetOutput(output(params))
	return flush
}

func output(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	logsDir := filepath.Dir(params.LogFileName)
	if exists, err := pkg.PathExists(logsDir, true); err != nil {
		logrus.Errorf("check logs dir [%s]: %s", logsDir, err)
	} else if !exists {
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			logrus.Errorf("create logs dir [%s]: %s", logsDir, err)
		}
	}

	maxSize := params.MaxFileSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxLogFileSizeMB
	}

	// rotated files are kept indefinitely
	fileLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   maxSize,
		LocalTime: false,
		Compress:  true,
	}

	if params.LogToStdout {
		logrus.Println("writing logs to file and STDOUT")
		return pkg.NewCombinedWriter(os.Stdout, fileLogger)
	}
	return fileLogger
}

func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
