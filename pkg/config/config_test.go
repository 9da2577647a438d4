package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, BackendModePostgres, cfg.Backend.Mode)
	assert.Equal(t, 10*time.Second, cfg.Query.StaleShort)
	assert.Equal(t, 30*time.Second, cfg.Query.StaleMedium)
	assert.Equal(t, 60*time.Second, cfg.Query.StaleLong)
	assert.Equal(t, 1, cfg.Query.Retry)
	assert.Equal(t, "module", cfg.Polling.Gating)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.Access.SecondaryAdminEmails)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, time.Minute, cfg.JWT.ReapEvery)
	assert.Equal(t, "Sahil Garments", cfg.Company.Name)
}

func TestFromViper_ReapCero(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_REAP_SECONDS", "0")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_RemoteSinURL(t *testing.T) {
	v := viper.New()
	v.Set("BACKEND_MODE", "remote")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("BACKEND_MODE", "REMOTE")
	v.Set("BACKEND_URL", "https://ic.example.com/")
	v.Set("QUERY_RETRY", "3")
	v.Set("POLLING_GATING", "global")
	v.Set("SECONDARY_ADMIN_EMAILS", " Ops@Sahil.in , ,audit@sahil.in")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, BackendModeRemote, cfg.Backend.Mode)
	assert.Equal(t, "https://ic.example.com", cfg.Backend.URL)
	assert.Equal(t, 3, cfg.Query.Retry)
	assert.Equal(t, "global", cfg.Polling.Gating)
	assert.Equal(t, []string{"ops@sahil.in", "audit@sahil.in"}, cfg.Access.SecondaryAdminEmails)
}

func TestFromViper_RetryFueraDeRango(t *testing.T) {
	v := viper.New()
	v.Set("QUERY_RETRY", 5)
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "erp", Password: "p@ss:w/rd", DBName: "sahil", SSLMode: "disable"}
	assert.Equal(t, "postgres://erp:p%40ss%3Aw%2Frd@db:5432/sahil?sslmode=disable", c.ConnectionString())
}

func TestFromViper_ModoMemoria(t *testing.T) {
	v := viper.New()
	v.Set("BACKEND_MODE", "memory")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, BackendModeMemory, cfg.Backend.Mode)

	v.Set("BACKEND_MODE", "mongo")
	_, err = fromViper(v)
	assert.Error(t, err)
}
