package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    ServerConfigs       `toml:"api_server"`
	Redis        RedisConfigs        `toml:"redis"`
	Gamification GamificationConfigs `toml:"gamification"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`

	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

// GamificationConfigs is the immutable scoring configuration. The zero
// value is not usable; call WithDefaults to fill in anything the config
// file leaves out.
type GamificationConfigs struct {
	// PointValues maps an action source tag to the points it awards.
	// Sources not present in the map award zero points.
	PointValues map[string]int `toml:"point_values"`

	// LevelThresholds[i] is the cumulative points needed to be at level
	// i+1. The first element must be zero.
	LevelThresholds []int `toml:"level_thresholds"`

	// Stats read-side limits.
	RecentBadges int `toml:"recent_badges"`
	RecentPoints int `toml:"recent_points"`
}

func defaultGamification() GamificationConfigs {
	return GamificationConfigs{
		PointValues: map[string]int{
			"forum_post":         10,
			"forum_comment":      5,
			"forum_like":         2,
			"event_attendance":   15,
			"event_registration": 5,
			"community_join":     8,
			"community_create":   20,
			"first_post":         25,
			"active_member":      30,
			"course_enrollment":  10,
			"course_completion":  50,
		},
		LevelThresholds: []int{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 12000},
		RecentBadges:    5,
		RecentPoints:    10,
	}
}

func (g GamificationConfigs) WithDefaults() GamificationConfigs {
	def := defaultGamification()
	if len(g.PointValues) == 0 {
		g.PointValues = def.PointValues
	}

	if len(g.LevelThresholds) == 0 {
		g.LevelThresholds = def.LevelThresholds
	}

	if g.RecentBadges == 0 {
		g.RecentBadges = def.RecentBadges
	}

	if g.RecentPoints == 0 {
		g.RecentPoints = def.RecentPoints
	}

	return g
}

// Load reads the TOML config file if path is not empty, then overrides
// connection settings with environment variables when they are set.
func Load(path string) (Configs, error) {
	cfg := Configs{
		Env: "local",
		ApiServer: ServerConfigs{
			Port:         "8080",
			DefaultLimit: 20,
			MaxLimit:     50,
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideEnv(&cfg.Env, "ENV")
	overrideEnv(&cfg.Database.Host, "MYSQL_HOST")
	overrideEnv(&cfg.Database.Port, "MYSQL_PORT")
	overrideEnv(&cfg.Database.Database, "MYSQL_DATABASE")
	overrideEnv(&cfg.Database.User, "MYSQL_USER")
	overrideEnv(&cfg.Database.Password, "MYSQL_PASSWORD")
	overrideEnv(&cfg.ApiServer.Host, "API_HOST")
	overrideEnv(&cfg.ApiServer.Port, "API_PORT")
	overrideEnv(&cfg.Redis.Addr, "REDIS_ADDR")

	cfg.Gamification = cfg.Gamification.WithDefaults()
	return cfg, nil
}

func overrideEnv(target *string, name string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}
