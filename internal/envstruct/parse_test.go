package envstruct_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/skypiea-tech/heronfit-recommendation-service/internal/envstruct"
)

type testConfig struct {
	Addr        string        `env:"TEST_ADDR" envDefault:"localhost:8080"`
	DatabaseURL string        `env:"TEST_DATABASE_URL"`
	Alpha       float64       `env:"TEST_ALPHA" envDefault:"0.5"`
	NeighborK   int           `env:"TEST_NEIGHBOR_K" envDefault:"20"`
	Refresh     time.Duration `env:"TEST_REFRESH" envDefault:"1h"`
	Debug       bool          `env:"TEST_DEBUG" envDefault:"false"`
	Untagged    string
}

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func TestPopulate(t *testing.T) {
	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: mapLookup(nil),
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: mapLookup(nil),
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "empty struct",
			v:         &struct{}{},
			lookupEnv: mapLookup(nil),
			want:      &struct{}{},
			wantErr:   nil,
		},
		{
			name: "defaults applied",
			v:    &testConfig{},
			lookupEnv: mapLookup(map[string]string{
				"TEST_DATABASE_URL": "postgres://localhost/heronfit",
			}),
			want: &testConfig{
				Addr:        "localhost:8080",
				DatabaseURL: "postgres://localhost/heronfit",
				Alpha:       0.5,
				NeighborK:   20,
				Refresh:     time.Hour,
				Debug:       false,
				Untagged:    "",
			},
			wantErr: nil,
		},
		{
			name: "environment overrides defaults",
			v:    &testConfig{},
			lookupEnv: mapLookup(map[string]string{
				"TEST_ADDR":         "0.0.0.0:9000",
				"TEST_DATABASE_URL": "postgres://db/heronfit",
				"TEST_ALPHA":        "0.7",
				"TEST_NEIGHBOR_K":   "35",
				"TEST_REFRESH":      "15m",
				"TEST_DEBUG":        "true",
			}),
			want: &testConfig{
				Addr:        "0.0.0.0:9000",
				DatabaseURL: "postgres://db/heronfit",
				Alpha:       0.7,
				NeighborK:   35,
				Refresh:     15 * time.Minute,
				Debug:       true,
				Untagged:    "",
			},
			wantErr: nil,
		},
		{
			name:      "missing required variable",
			v:         &testConfig{},
			lookupEnv: mapLookup(nil),
			want:      nil,
			wantErr:   envstruct.ErrEnvNotSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Populate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Populate() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, tt.v); diff != "" {
				t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPopulateInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantSub string
	}{
		{
			name:    "bad int",
			env:     map[string]string{"TEST_DATABASE_URL": "x", "TEST_NEIGHBOR_K": "many"},
			wantSub: "parse int",
		},
		{
			name:    "bad float",
			env:     map[string]string{"TEST_DATABASE_URL": "x", "TEST_ALPHA": "half"},
			wantSub: "parse float",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"TEST_DATABASE_URL": "x", "TEST_REFRESH": "soon"},
			wantSub: "parse duration",
		},
		{
			name:    "bad bool",
			env:     map[string]string{"TEST_DATABASE_URL": "x", "TEST_DEBUG": "yes please"},
			wantSub: "parse bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg testConfig
			err := envstruct.Populate(&cfg, mapLookup(tt.env))
			if err == nil {
				t.Fatal("Populate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Populate() error = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}
