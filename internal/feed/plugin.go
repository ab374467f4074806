package feed

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// requestLogger is a heimdall plugin that logs every outbound feed request.
type requestLogger struct{}

func (p *requestLogger) OnRequestStart(req *http.Request) {
	logrus.WithField("url", req.URL.String()).Debug("fetching feed")
}

func (p *requestLogger) OnRequestEnd(req *http.Request, resp *http.Response) {
	logrus.WithFields(logrus.Fields{
		"url":    req.URL.String(),
		"status": resp.StatusCode,
	}).Debug("feed response received")
}

func (p *requestLogger) OnError(req *http.Request, err error) {
	logrus.WithField("url", req.URL.String()).WithError(err).Warn("feed request error")
}
