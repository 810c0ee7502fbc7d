package app

import (
	"github.com/specialistvlad/spectrumgo/internal/bootstrap"
	"github.com/specialistvlad/spectrumgo/internal/bootstrap/local"
	"github.com/specialistvlad/spectrumgo/internal/bootstrap/socketio"
	"github.com/specialistvlad/spectrumgo/internal/config"
)

// newTransport picks the process group transport. CLI settings win over the
// bootstrap section; without either the process runs as a group of one.
func newTransport(section *config.Bootstrap, appConfig *Config) (bootstrap.Transport, error) {
	var b config.Bootstrap
	if section != nil {
		b = *section
	}
	if appConfig.Transport != "" {
		b.Transport = appConfig.Transport
	}
	if appConfig.CoordinatorURL != "" {
		b.URL = appConfig.CoordinatorURL
	}
	if appConfig.Job != "" {
		b.Job = appConfig.Job
	}

	if b.Transport != config.TransportSocketIO {
		return local.New(), nil
	}
	return socketio.New(b.URL, socketio.Options{
		Job:       b.Job,
		Size:      b.Size,
		Namespace: b.Namespace,
		Timeout:   b.Timeout,
	})
}
