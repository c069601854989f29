package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"development text", "development", "debug", logrus.DebugLevel, false},
		{"production json", "production", "warn", logrus.WarnLevel, true},
		{"bad level falls back to info", "production", "loud", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New("inventario", tt.env, tt.level)

			if log.GetLevel() != tt.wantLevel {
				t.Errorf("expected level %v, got %v", tt.wantLevel, log.GetLevel())
			}
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("expected JSON formatter %v, got %T", tt.wantJSON, log.Formatter)
			}
		})
	}
}
