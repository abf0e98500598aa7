package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Tier controls per-match economics: apple spawn odds and the stat multiplier
// applied to every snake in the match.
type Tier struct {
	Name           string
	AppleChance    float64 // probability the apple spawns at match start
	StatMultiplier float64 // mass multiplier; speed gets 10% of the bonus
}

// Config is read once at process start. Rooms receive a value copy at
// construction and never re-read the environment mid-match.
type Config struct {
	// Server
	Port      string
	StaticDir string
	WSPath    string

	// Game loop
	TickRate      int // simulation ticks per second
	BroadcastRate int // full state snapshots per second

	// World
	MapWidth  float64
	MapHeight float64

	// Snakes
	StartLength int

	// Pellets
	TargetPelletCount int

	// Match
	MaxDuration time.Duration

	// Spatial grid
	GridCellSize float64

	// Shrinking safe zone
	ShrinkEnabled     bool
	ShrinkEndFraction float64 // shrink completes at this fraction of MaxDuration
	MinBoundsFraction float64 // final bounds size as a fraction of each map dimension

	// Leaderboard
	LeaderboardSize int

	// Bots
	BotCount int

	// Connection limits
	MaxPlayers    int
	IPCooldownSec int

	FreeTier Tier
	PaidTier Tier
}

// Default returns the baseline configuration used when no environment
// overrides are present.
func Default() Config {
	return Config{
		Port:      ":8080",
		StaticDir: "./client",
		WSPath:    "/ws",

		TickRate:      60,
		BroadcastRate: 10,

		MapWidth:  5000,
		MapHeight: 5000,

		StartLength: 10,

		TargetPelletCount: 400,

		MaxDuration: 5 * time.Minute,

		GridCellSize: 100,

		ShrinkEnabled:     true,
		ShrinkEndFraction: 0.9,
		MinBoundsFraction: 0.2,

		LeaderboardSize: 10,

		BotCount: 8,

		MaxPlayers:    50,
		IPCooldownSec: 30,

		FreeTier: Tier{Name: "free", AppleChance: 0.1, StatMultiplier: 1.0},
		PaidTier: Tier{Name: "paid", AppleChance: 1.0, StatMultiplier: 1.25},
	}
}

// Load reads the configuration from the environment, applying defaults for
// anything unset. A .env file is loaded first when present.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	cfg := Default()
	cfg.Port = envStr("ARENA_PORT", cfg.Port)
	cfg.StaticDir = envStr("ARENA_STATIC_DIR", cfg.StaticDir)
	cfg.TickRate = envInt("ARENA_TICK_RATE", cfg.TickRate)
	cfg.BroadcastRate = envInt("ARENA_BROADCAST_RATE", cfg.BroadcastRate)
	cfg.MapWidth = envFloat("ARENA_MAP_WIDTH", cfg.MapWidth)
	cfg.MapHeight = envFloat("ARENA_MAP_HEIGHT", cfg.MapHeight)
	cfg.StartLength = envInt("ARENA_START_LENGTH", cfg.StartLength)
	cfg.TargetPelletCount = envInt("ARENA_PELLET_COUNT", cfg.TargetPelletCount)
	cfg.MaxDuration = envDur("ARENA_MAX_DURATION", cfg.MaxDuration)
	cfg.GridCellSize = envFloat("ARENA_GRID_CELL_SIZE", cfg.GridCellSize)
	cfg.ShrinkEnabled = envBool("ARENA_SHRINK_ENABLED", cfg.ShrinkEnabled)
	cfg.ShrinkEndFraction = envFloat("ARENA_SHRINK_END_FRACTION", cfg.ShrinkEndFraction)
	cfg.MinBoundsFraction = envFloat("ARENA_MIN_BOUNDS_FRACTION", cfg.MinBoundsFraction)
	cfg.LeaderboardSize = envInt("ARENA_LEADERBOARD_SIZE", cfg.LeaderboardSize)
	cfg.BotCount = envInt("ARENA_BOT_COUNT", cfg.BotCount)
	cfg.MaxPlayers = envInt("ARENA_MAX_PLAYERS", cfg.MaxPlayers)
	cfg.IPCooldownSec = envInt("ARENA_IP_COOLDOWN_SEC", cfg.IPCooldownSec)
	cfg.PaidTier.StatMultiplier = envFloat("ARENA_PAID_STAT_MULT", cfg.PaidTier.StatMultiplier)
	cfg.FreeTier.AppleChance = envFloat("ARENA_FREE_APPLE_CHANCE", cfg.FreeTier.AppleChance)
	return cfg
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: bad value for %s: %q", key, v)
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: bad value for %s: %q", key, v)
		return def
	}
	return f
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: bad value for %s: %q", key, v)
		return def
	}
	return b
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: bad value for %s: %q", key, v)
		return def
	}
	return d
}
