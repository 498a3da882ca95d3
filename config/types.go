package config

// ServerConfig configures the HTTP API of the serve mode
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// NetworkConfig points at the GTFS static feed whose shapes form the network
type NetworkConfig struct {
	StaticURL string `yaml:"staticURL" validate:"omitempty"` // URL or local zip path
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty"` // URL or local file path
	ReadIntervalMS      int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// MatcherConfig tunes how vehicle traces are snapped onto the network
type MatcherConfig struct {
	SearchRadiusMeters float64 `yaml:"searchRadiusMeters" validate:"gte=0"`
	MaxTraceLength     int     `yaml:"maxTraceLength" validate:"gte=0"`
	Workers            int     `yaml:"workers" validate:"gte=0"`
}

// OutputConfig selects the rendering of matched paths
type OutputConfig struct {
	Format string `yaml:"format" validate:"omitempty,oneof=json geojson"`
}

// Feed represents a single named network + realtime feed pair
type Feed struct {
	Name    string        `yaml:"name" validate:"required"`
	Network NetworkConfig `yaml:"network" validate:"required"`
	GTFSRT  GTFSRTConfig  `yaml:"gtfsrt" validate:"required"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Network NetworkConfig `yaml:"network"`
	GTFSRT  GTFSRTConfig  `yaml:"gtfsrt"`
	Matcher MatcherConfig `yaml:"matcher"`
	Output  OutputConfig  `yaml:"output"`
	Feeds   []Feed        `yaml:"feeds" validate:"dive"`
}

// Defaults applied to zero values after validation
const (
	DefaultSearchRadiusMeters = 50.0
	DefaultMaxTraceLength     = 64
	DefaultWorkers            = 4
	DefaultFormat             = "json"
	DefaultPort               = 16181
)
