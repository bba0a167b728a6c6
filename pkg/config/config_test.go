package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEndpointConfig_AuthMode(t *testing.T) {
	tests := []struct {
		name   string
		config EndpointConfig
		want   string
	}{
		{
			name:   "no username means no auth",
			config: EndpointConfig{},
			want:   AuthNone,
		},
		{
			name:   "username implies basic",
			config: EndpointConfig{Username: "sap_usr", Password: "sap_pwd"},
			want:   AuthBasic,
		},
		{
			name:   "explicit mode wins",
			config: EndpointConfig{Username: "svc", Auth: AuthNTLM},
			want:   AuthNTLM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.AuthMode(); got != tt.want {
				t.Errorf("AuthMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	envVarsToClean := []string{
		"BOIPROXY_SERVER_ENVIRONMENT",
		"BOIPROXY_BOI_SAP_ENDPOINT",
		"BOIPROXY_BOI_PICTURE_ENABLED",
	}
	originals := make(map[string]string)
	for _, v := range envVarsToClean {
		originals[v] = os.Getenv(v)
		os.Unsetenv(v)
	}
	defer func() {
		for k, v := range originals {
			if v != "" {
				os.Setenv(k, v)
			}
		}
	}()

	cfg, err := Load("boi-proxy-test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Environment != EnvDevelopment {
		t.Errorf("Server.Environment = %v, want development", cfg.Server.Environment)
	}
	if cfg.Server.Route != "boi" {
		t.Errorf("Server.Route = %v, want boi", cfg.Server.Route)
	}
	if cfg.Boi.CardFields.IdNumber != "ID_Number" {
		t.Errorf("CardFields.IdNumber = %v, want ID_Number", cfg.Boi.CardFields.IdNumber)
	}
	if cfg.Boi.CardFields.PhotoBase64 != "PhotoBase64" {
		t.Errorf("CardFields.PhotoBase64 = %v, want PhotoBase64", cfg.Boi.CardFields.PhotoBase64)
	}
	if !cfg.Boi.Picture.Enabled {
		t.Error("Picture adapter should be enabled by default")
	}
	if cfg.Boi.Sap.MaxAttempts != 1 {
		t.Errorf("Sap.MaxAttempts = %v, want 1", cfg.Boi.Sap.MaxAttempts)
	}
	if cfg.Boi.Srhr.Factory != "0000" {
		t.Errorf("Srhr.Factory = %v, want 0000", cfg.Boi.Srhr.Factory)
	}
	if cfg.Boi.Srhr.AuthMode() != AuthNTLM {
		t.Errorf("Srhr.AuthMode() = %v, want ntlm", cfg.Boi.Srhr.AuthMode())
	}
	if cfg.Boi.Callback.Timeout != 60*time.Second {
		t.Errorf("Callback.Timeout = %v, want 60s", cfg.Boi.Callback.Timeout)
	}

	wantSteps := []StepConfig{
		{Name: StepPicture, Blocking: false},
		{Name: StepSms, Blocking: false},
		{Name: StepSrhr, Blocking: true},
	}
	if len(cfg.Boi.Callback.Steps) != len(wantSteps) {
		t.Fatalf("Callback.Steps = %v, want %v", cfg.Boi.Callback.Steps, wantSteps)
	}
	for i, s := range wantSteps {
		if cfg.Boi.Callback.Steps[i] != s {
			t.Errorf("Callback.Steps[%d] = %v, want %v", i, cfg.Boi.Callback.Steps[i], s)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("BOIPROXY_BOI_SAP_ENDPOINT", "https://sap.example/comda")
	os.Setenv("BOIPROXY_BOI_PICTURE_ENABLED", "false")
	defer os.Unsetenv("BOIPROXY_BOI_SAP_ENDPOINT")
	defer os.Unsetenv("BOIPROXY_BOI_PICTURE_ENABLED")

	cfg, err := Load("boi-proxy-test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Boi.Sap.Endpoint != "https://sap.example/comda" {
		t.Errorf("Sap.Endpoint = %v", cfg.Boi.Sap.Endpoint)
	}
	if cfg.Boi.Picture.Enabled {
		t.Error("Picture.Enabled should be overridden to false")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.yaml")
	content := `
server:
  route: /ccms/
boi:
  card_fields:
    id_number: TZ
  callback:
    steps:
      - name: picture
        blocking: false
      - name: sms
        blocking: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile("boi-proxy-test", path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Route != "ccms" {
		t.Errorf("Server.Route = %v, want ccms", cfg.Server.Route)
	}
	if cfg.Boi.CardFields.IdNumber != "TZ" {
		t.Errorf("CardFields.IdNumber = %v, want TZ", cfg.Boi.CardFields.IdNumber)
	}
	if cfg.Boi.CardFields.CardNumber != "CardNo" {
		t.Errorf("CardFields.CardNumber = %v, want default CardNo", cfg.Boi.CardFields.CardNumber)
	}
	if len(cfg.Boi.Callback.Steps) != 2 {
		t.Errorf("Callback.Steps = %v, want 2 entries", cfg.Boi.Callback.Steps)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("boi-proxy-test", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile() with missing file should error")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("boi-proxy-test")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid in development",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown auth mode",
			mutate:  func(c *Config) { c.Boi.Sap.Auth = "kerberos" },
			wantErr: true,
		},
		{
			name:    "unknown unparseable policy",
			mutate:  func(c *Config) { c.Boi.Picture.UnparseableResponse = "maybe" },
			wantErr: true,
		},
		{
			name:    "endpoint must be a URL",
			mutate:  func(c *Config) { c.Boi.Sms.Endpoint = "not a url" },
			wantErr: true,
		},
		{
			name: "unknown step",
			mutate: func(c *Config) {
				c.Boi.Callback.Steps = append(c.Boi.Callback.Steps, StepConfig{Name: "fax"})
			},
			wantErr: true,
		},
		{
			name: "production requires endpoints of enabled adapters",
			mutate: func(c *Config) {
				c.Server.Environment = EnvProduction
			},
			wantErr: true,
		},
		{
			name: "production accepts disabled adapter without endpoint",
			mutate: func(c *Config) {
				c.Server.Environment = EnvProduction
				c.Boi.Srhr.Enabled = false
			},
			wantErr: false,
		},
		{
			name: "production rejects localhost broker",
			mutate: func(c *Config) {
				c.Server.Environment = EnvProduction
				c.Boi.Srhr.Enabled = false
				c.RabbitMQ.Enabled = true
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
